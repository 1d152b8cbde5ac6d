package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PaymentBNPL is the installment based payment method. Shipments paid this way carry an installment record.
const PaymentBNPL = "BNPL"

// Shipment is a shipment record as stored by the contract. Field order and names follow the contract tuple.
type Shipment struct {
	TransactionHash     [32]byte
	UserId              string //nolint:revive,stylecheck // tuple component name
	Email               string
	ShipmentServiceCode string
	CarrierName         string
	CreatedAt           string
	Status              string
	SelectedRate        *big.Int
	NoOfInstallments    *big.Int
	NetPayable          *big.Int
	InsuranceAmount     *big.Int
	PaymentMethod       string
}

// Empty is true for the zero record returned by the contract for unknown keys.
func (s Shipment) Empty() bool {
	return s.TransactionHash == [32]byte{}
}

// Record returns the JSON object replied to clients.
func (s Shipment) Record() map[string]interface{} {
	return map[string]interface{}{
		"transactionHash":     common.Hash(s.TransactionHash).Hex(),
		"userId":              s.UserId,
		"email":               s.Email,
		"shipmentServiceCode": s.ShipmentServiceCode,
		"carrierName":         s.CarrierName,
		"createdAt":           s.CreatedAt,
		"status":              s.Status,
		"selectedRate":        s.SelectedRate,
		"noOfInstallments":    s.NoOfInstallments,
		"netPayable":          s.NetPayable,
		"insuranceAmount":     s.InsuranceAmount,
		"paymentMethod":       s.PaymentMethod,
	}
}

// Instalment is the installment record of a BNPL shipment.
type Instalment struct {
	TransactionHash    [32]byte
	InstalmentDeadLine string
	PayableAmount      *big.Int
	PaidAmounts        []*big.Int
	PaidDates          []string
}

// Record returns the JSON object replied to clients, empty when the shipment has no installments.
func (i Instalment) Record() map[string]interface{} {
	if i.TransactionHash == [32]byte{} {
		return map[string]interface{}{}
	}

	return map[string]interface{}{
		"transactionHash":    common.Hash(i.TransactionHash).Hex(),
		"instalmentDeadLine": i.InstalmentDeadLine,
		"payableAmount":      i.PayableAmount,
		"paidAmount":         i.PaidAmounts,
		"paidDate":           i.PaidDates,
	}
}

// NewShipment holds the arguments of createData.
type NewShipment struct {
	UserID              string
	Email               string
	ShipmentServiceCode string
	CarrierName         string
	CreatedAt           string
	Status              string
	SelectedRate        *big.Int
	NoOfInstallments    *big.Int
	NetPayable          *big.Int
	InsuranceAmount     *big.Int
	PaymentMethod       string
}

// args returns the createData arguments in contract order.
func (n NewShipment) args() []interface{} {
	return []interface{}{
		n.UserID, n.Email, n.ShipmentServiceCode, n.CarrierName, n.CreatedAt, n.Status,
		orZero(n.SelectedRate), orZero(n.NoOfInstallments), orZero(n.NetPayable), orZero(n.InsuranceAmount),
		n.PaymentMethod,
	}
}

// DataCreated is the event emitted by createData.
type DataCreated struct {
	TransactionHash     [32]byte
	Username            string
	ShipmentServiceCode string
	CarrierName         string
	CreatedAt           string
	Status              string
	SelectedRate        *big.Int
	NoOfInstallments    *big.Int
	NetPayable          *big.Int
	PaidAmount          *big.Int
	InsuranceAmount     *big.Int
	Raw                 types.Log `json:"-"`
}

// Fields returns the eleven event fields in declaration order.
func (e DataCreated) Fields() []interface{} {
	return []interface{}{
		common.Hash(e.TransactionHash), e.Username, e.ShipmentServiceCode, e.CarrierName, e.CreatedAt, e.Status,
		e.SelectedRate, e.NoOfInstallments, e.NetPayable, e.PaidAmount, e.InsuranceAmount,
	}
}

// FieldNames are the labels of Fields, in the same order.
var FieldNames = []string{ //nolint:gochecknoglobals // read only
	"Transaction Hash", "Username", "Shipment Service Code", "Carrier Name", "Created At", "Status",
	"Selected Rate", "No of Installments", "Net Payable", "Paid Amount", "Insurance Amount",
}

func orZero(b *big.Int) *big.Int {
	if b == nil {
		return new(big.Int)
	}

	return b
}
