package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tarancss/shipledger/lib/fault"
)

// Client is the typed access to the ledger used by the gateway: confirmed writes and classified reads.
type Client struct {
	c *Contract
	s *Submitter
}

// NewClient returns a client sending its writes through s.
func NewClient(c *Contract, s *Submitter) *Client {
	return &Client{c: c, s: s}
}

// CreateData stores a new shipment.
func (cl *Client) CreateData(ctx context.Context, n NewShipment) (*types.Receipt, error) {
	return cl.s.Submit(ctx, MethodCreateData, n.args()...)
}

// SetInstallmentData opens the installment schedule of a BNPL shipment.
func (cl *Client) SetInstallmentData(ctx context.Context, hash common.Hash, deadline string,
	payable *big.Int) (*types.Receipt, error) {
	return cl.s.Submit(ctx, MethodSetInstallmentData, hash, deadline, orZero(payable))
}

// UpdateInstalment records an installment payment.
func (cl *Client) UpdateInstalment(ctx context.Context, hash common.Hash, paid *big.Int,
	date string) (*types.Receipt, error) {
	return cl.s.Submit(ctx, MethodUpdateInstalment, hash, orZero(paid), date)
}

// UpdateStatus changes the status of a shipment.
func (cl *Client) UpdateStatus(ctx context.Context, hash common.Hash, status string) (*types.Receipt, error) {
	return cl.s.Submit(ctx, MethodUpdateStatus, hash, status)
}

// AllData returns every shipment.
func (cl *Client) AllData(ctx context.Context) ([]Shipment, error) {
	s, err := cl.c.GetAllData(ctx)
	if err != nil {
		return nil, fault.Classify(MethodGetAllData, err)
	}

	return s, nil
}

// ShipmentByHash returns the shipment with the given data access hash, fault.ErrNotFound if there is none.
func (cl *Client) ShipmentByHash(ctx context.Context, hash common.Hash) (Shipment, error) {
	s, err := cl.c.GetDataByTransactionHash(ctx, hash)
	if err != nil {
		return s, fault.Classify(MethodGetDataByHash, err)
	}

	if s.Empty() {
		return s, fault.New(fault.Rejected, MethodGetDataByHash, fault.ErrNotFound)
	}

	return s, nil
}

// InstalmentByHash returns the installment record of a shipment. Shipments without installments return a zero
// record.
func (cl *Client) InstalmentByHash(ctx context.Context, hash common.Hash) (Instalment, error) {
	i, err := cl.c.GetInstalmentDataByTransactionHash(ctx, hash)
	if err != nil {
		return i, fault.Classify(MethodGetInstalmentByHash, err)
	}

	return i, nil
}

// ShipmentByID returns the shipment stored at position id.
func (cl *Client) ShipmentByID(ctx context.Context, id *big.Int) (Shipment, error) {
	s, err := cl.c.UserShipment(ctx, id)
	if err != nil {
		return s, fault.Classify(MethodUserShipment, err)
	}

	return s, nil
}

// Outcome is the result replied for a confirmed write.
type Outcome struct {
	BlockChainHash string `json:"blockChainHash"`
	DataAccessHash string `json:"dataAccessHash,omitempty"`
	BlockNumber    uint64 `json:"blockNumber,omitempty"`
}

// CreateOutcome extracts the outcome of a createData receipt: its transaction hash and the data access hash, that
// is topics[1] of the first log.
func CreateOutcome(rec *types.Receipt) (Outcome, error) {
	if rec == nil || len(rec.Logs) == 0 || len(rec.Logs[0].Topics) < 2 {
		return Outcome{}, fault.New(fault.Rejected, MethodCreateData, fault.ErrNoLogs)
	}

	return Outcome{
		BlockChainHash: rec.Logs[0].TxHash.Hex(),
		DataAccessHash: rec.Logs[0].Topics[1].Hex(),
		BlockNumber:    blockOf(rec),
	}, nil
}

func blockOf(rec *types.Receipt) uint64 {
	if rec.BlockNumber == nil {
		return 0
	}

	return rec.BlockNumber.Uint64()
}
