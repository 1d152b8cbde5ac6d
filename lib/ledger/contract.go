// Package ledger binds the DataStorage contract: typed reads, writes through a single-writer Submitter and access
// to the DataCreated events.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Errors returned by the binding.
var (
	ErrNoABI       = errors.New("descriptor does not contain an abi")
	ErrNoBytecode  = errors.New("descriptor does not contain a bytecode")
	ErrBadContract = errors.New("not a valid contract address")
	ErrBadOutput   = errors.New("unexpected output from contract call")
)

// Descriptor is the compiled contract: its interface and deployment bytecode.
type Descriptor struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode string          `json:"bytecode"`
}

// LoadDescriptor reads a compiled contract JSON file. The abi field may be either a JSON array or a string
// holding it.
func LoadDescriptor(path string) (Descriptor, error) {
	var d Descriptor

	b, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("cannot read contract descriptor: %w", err)
	}

	if err = json.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("cannot decode contract descriptor: %w", err)
	}

	if len(d.ABI) == 0 {
		return d, ErrNoABI
	}

	var s string
	if json.Unmarshal(d.ABI, &s) == nil {
		d.ABI = json.RawMessage(s)
	}

	return d, nil
}

// Parse returns the parsed contract interface.
func (d Descriptor) Parse() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(string(d.ABI)))
}

// Code returns the deployment bytecode.
func (d Descriptor) Code() ([]byte, error) {
	if d.Bytecode == "" {
		return nil, ErrNoBytecode
	}

	return common.FromHex(d.Bytecode), nil
}

// Backend is everything the binding needs from a node: calls, transactions, receipts and logs.
// *ethclient.Client implements it.
type Backend interface {
	bind.ContractBackend
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Contract is a handle to a deployed DataStorage contract.
type Contract struct {
	address   common.Address
	abi       abi.ABI
	bound     *bind.BoundContract
	backend   Backend
	dataTopic common.Hash
}

// NewContract binds the contract at address. When parsed is nil, DataStorageABI is used.
func NewContract(address string, parsed *abi.ABI, backend Backend) (*Contract, error) {
	if !common.IsHexAddress(address) {
		return nil, ErrBadContract
	}

	if parsed == nil {
		a, err := abi.JSON(strings.NewReader(DataStorageABI))
		if err != nil {
			return nil, err
		}

		parsed = &a
	}

	ev, ok := parsed.Events[EventDataCreated]
	if !ok {
		return nil, fmt.Errorf("abi has no %s event", EventDataCreated)
	}

	addr := common.HexToAddress(address)

	return &Contract{
		address:   addr,
		abi:       *parsed,
		bound:     bind.NewBoundContract(addr, *parsed, backend, backend, backend),
		backend:   backend,
		dataTopic: ev.ID,
	}, nil
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// Pack encodes a method call, failing when params do not match the method inputs.
func (c *Contract) Pack(method string, params ...interface{}) ([]byte, error) {
	return c.abi.Pack(method, params...)
}

// Transact invokes a state changing method, returning the transaction sent.
func (c *Contract) Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error) {
	return c.bound.Transact(opts, method, params...)
}

// GetAllData returns every shipment record.
func (c *Contract) GetAllData(ctx context.Context) ([]Shipment, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, MethodGetAllData); err != nil {
		return nil, err
	}

	return decodeOne[[]Shipment](out)
}

// GetDataByTransactionHash returns the shipment created with the given data access hash.
func (c *Contract) GetDataByTransactionHash(ctx context.Context, hash common.Hash) (Shipment, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, MethodGetDataByHash, hash); err != nil {
		return Shipment{}, err
	}

	return decodeOne[Shipment](out)
}

// GetInstalmentDataByTransactionHash returns the installment record for the given data access hash.
func (c *Contract) GetInstalmentDataByTransactionHash(ctx context.Context, hash common.Hash) (Instalment, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, MethodGetInstalmentByHash, hash); err != nil {
		return Instalment{}, err
	}

	return decodeOne[Instalment](out)
}

// UserShipment returns the shipment stored at position id.
func (c *Contract) UserShipment(ctx context.Context, id *big.Int) (Shipment, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, MethodUserShipment, id); err != nil {
		return Shipment{}, err
	}

	return shipmentFromOutputs(out)
}

// decodeOne converts the single output of a call into T.
func decodeOne[T any](out []interface{}) (T, error) {
	if len(out) != 1 {
		var zero T

		return zero, ErrBadOutput
	}

	return convert[T](out[0])
}

// convert copies a decoded value into T, returning ErrBadOutput when their shapes differ.
func convert[T any](in interface{}) (v T, err error) {
	if in == nil {
		return v, ErrBadOutput
	}

	defer func() {
		// abi.ConvertType panics on type mismatch
		if r := recover(); r != nil {
			var zero T

			v, err = zero, fmt.Errorf("%w: %v", ErrBadOutput, r)
		}
	}()

	p, ok := abi.ConvertType(in, new(T)).(*T)
	if !ok {
		return v, ErrBadOutput
	}

	return *p, nil
}

// shipmentFromOutputs builds a Shipment from the flattened outputs of a public struct getter.
func shipmentFromOutputs(out []interface{}) (s Shipment, err error) {
	const fields = 12
	if len(out) != fields {
		return s, ErrBadOutput
	}

	if s.TransactionHash, err = convert[[32]byte](out[0]); err != nil {
		return Shipment{}, err
	}

	strs := []*string{&s.UserId, &s.Email, &s.ShipmentServiceCode, &s.CarrierName, &s.CreatedAt, &s.Status,
		&s.PaymentMethod}
	idx := []int{1, 2, 3, 4, 5, 6, 11}

	for i, p := range strs {
		if *p, err = convert[string](out[idx[i]]); err != nil {
			return Shipment{}, err
		}
	}

	nums := []**big.Int{&s.SelectedRate, &s.NoOfInstallments, &s.NetPayable, &s.InsuranceAmount}
	for i, p := range nums {
		if *p, err = convert[*big.Int](out[7+i]); err != nil {
			return Shipment{}, err
		}
	}

	return s, nil
}

// FilterDataCreated returns the DataCreated events emitted in the block range [from, to].
func (c *Contract) FilterDataCreated(ctx context.Context, from, to uint64) ([]DataCreated, error) {
	logs, err := c.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{c.address},
		Topics:    [][]common.Hash{{c.dataTopic}},
	})
	if err != nil {
		return nil, err
	}

	evs := make([]DataCreated, 0, len(logs))

	for _, l := range logs {
		if l.Removed {
			continue
		}

		ev, err := c.UnpackDataCreated(l)
		if err != nil {
			return nil, err
		}

		evs = append(evs, ev)
	}

	return evs, nil
}

// UnpackDataCreated decodes a DataCreated log.
func (c *Contract) UnpackDataCreated(l types.Log) (DataCreated, error) {
	var ev DataCreated
	if len(l.Topics) < 2 || l.Topics[0] != c.dataTopic {
		return ev, fmt.Errorf("%w: not a %s log", ErrBadOutput, EventDataCreated)
	}

	if err := c.bound.UnpackLog(&ev, EventDataCreated, l); err != nil {
		return ev, fmt.Errorf("cannot unpack %s log: %w", EventDataCreated, err)
	}

	ev.Raw = l

	return ev, nil
}

// BlockNumber returns the head of the chain, used to bound event filters.
func (c *Contract) BlockNumber(ctx context.Context) (uint64, error) {
	return c.backend.BlockNumber(ctx)
}
