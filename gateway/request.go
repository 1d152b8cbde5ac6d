package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/tarancss/shipledger/lib/ledger"
)

// Errors returned to client requests.
var (
	ErrBadAmount = errors.New("amount must be a non-negative integer below 2^256, as a JSON number or a decimal " +
		"string")
	ErrBadText   = errors.New("value must be a string or a number")
	ErrBadID     = errors.New("id must be a non-negative integer")
)

// maxAmountBits is the size of the uint256 amounts stored by the contract.
const maxAmountBits = 256

// Amount is an unsigned integer amount, sent either as a JSON number or a decimal string.
type Amount struct {
	v *big.Int
}

// NewAmount returns the amount for v.
func NewAmount(v int64) *Amount {
	return &Amount{v: big.NewInt(v)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))

	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 || v.BitLen() > maxAmountBits {
		return ErrBadAmount
	}

	a.v = v

	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.v == nil {
		return []byte("0"), nil
	}

	return []byte(a.v.String()), nil
}

// Int returns the amount, nil when not sent.
func (a *Amount) Int() *big.Int {
	if a == nil {
		return nil
	}

	return a.v
}

// Text is a string that clients may also send as a JSON number (ie. user ids).
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*t = Text(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrBadText
	}

	*t = Text(n)

	return nil
}

// ShipmentRequest is the body of a create request. The instalment fields are required for BNPL shipments and
// ignored otherwise.
type ShipmentRequest struct {
	UserID              Text      `json:"user_id"`
	Email               string    `json:"email"`
	ShipmentServiceCode string    `json:"shipmentServiceCode"`
	CarrierName         string    `json:"carrierName"`
	CreatedAt           string    `json:"createdAt"`
	Status              string    `json:"status"`
	SelectedRate        *Amount   `json:"selectedRate"`
	NoOfInstallments    *Amount   `json:"noOfInstallments"`
	NetPayable          *Amount   `json:"netPayable"`
	InsuranceAmount     *Amount   `json:"insuranceAmount"`
	PaymentMethod       string    `json:"paymentMethod"`
	InstalmentDeadLine  string    `json:"instalmentDeadLine,omitempty"`
	PayableAmount       *Amount   `json:"payableAmount,omitempty"`
	PaymentDate         []string  `json:"paymentDate,omitempty"`
	PaidAmount          []*Amount `json:"paidAmount,omitempty"`
}

// BNPL is true for installment shipments.
func (s *ShipmentRequest) BNPL() bool {
	return s.PaymentMethod == ledger.PaymentBNPL
}

// Validate checks that the instalment fields are present for BNPL shipments.
func (s *ShipmentRequest) Validate() error {
	if !s.BNPL() {
		return nil
	}

	switch {
	case s.InstalmentDeadLine == "":
		return errors.New("instalmentDeadLine is required for BNPL shipments")
	case s.PayableAmount == nil:
		return errors.New("payableAmount is required for BNPL shipments")
	case len(s.PaidAmount) == 0 || s.PaidAmount[0] == nil:
		return errors.New("paidAmount[0] is required for BNPL shipments")
	case len(s.PaymentDate) == 0:
		return errors.New("paymentDate[0] is required for BNPL shipments")
	}

	return nil
}

// Shipment returns the createData arguments.
func (s *ShipmentRequest) Shipment() ledger.NewShipment {
	return ledger.NewShipment{
		UserID:              string(s.UserID),
		Email:               s.Email,
		ShipmentServiceCode: s.ShipmentServiceCode,
		CarrierName:         s.CarrierName,
		CreatedAt:           s.CreatedAt,
		Status:              s.Status,
		SelectedRate:        s.SelectedRate.Int(),
		NoOfInstallments:    s.NoOfInstallments.Int(),
		NetPayable:          s.NetPayable.Int(),
		InsuranceAmount:     s.InsuranceAmount.Int(),
		PaymentMethod:       s.PaymentMethod,
	}
}

// StatusRequest is the body of a status update.
type StatusRequest struct {
	Status string `json:"status"`
}

// InstalmentRequest is the body of an installment payment.
type InstalmentRequest struct {
	PaidAmount *Amount `json:"paidAmount"`
	PaidDate   string  `json:"paidDate"`
}
