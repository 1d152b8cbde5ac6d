// Package types common ledger network types.
package types

import (
	"errors"
)

// Trans contains a simplified number of transaction fields as found in a block.
type Trans struct {
	Block  string `json:"block"`
	Hash   string `json:"hash"`
	From   string `json:"from"`
	To     string `json:"to,omitempty"` // empty on contract creation
	Value  string `json:"value"`
	Nonce  string `json:"nonce"`
	Data   string `json:"data,omitempty"`
	Gas    string `json:"gas"`
	Price  uint64 `json:"price"`
	Index  string `json:"index"`
	Create bool   `json:"create,omitempty"`
}

// Block contains a simplified list of block fields.
type Block struct {
	Hash     string  `json:"hash"`
	PHash    string  `json:"parentHash"`
	Number   string  `json:"number"`
	TS       string  `json:"timestamp"`
	Miner    string  `json:"miner"`
	GasUsed  string  `json:"gasUsed"`
	GasLimit string  `json:"gasLimit"`
	TxHashes []string `json:"transactions,omitempty"`
}

// Error codes.
var (
	ErrBlockDecode   = errors.New("unable to decode block data into Block type")
	ErrNoBlockNumber = errors.New("block data does not contain a block number")
	ErrNoTS          = errors.New("block data does not contain a timestamp")
	ErrNoHash        = errors.New("block data does not contain a hash")
	ErrNoParentHash  = errors.New("block data does not contain a parenthash")
	ErrNoBlock       = errors.New("block not available yet")
	ErrNoTrx         = errors.New("transactions not found in block data")
	ErrNoTrxHash     = errors.New("malformed tx data in block, field 'hash' missing")
	ErrNoTrxInput    = errors.New("malformed tx data in block, field 'input' missing")
	ErrNoTrxValue    = errors.New("malformed tx data in block, field 'value' missing")
	ErrNoTrxFrom     = errors.New("malformed tx data in block, field 'from' missing")
	ErrNoTrxGas      = errors.New("malformed tx data in block, field 'gas' missing")
	ErrNoTrxGasPrice = errors.New("malformed tx data in block, field 'gasPrice' missing")
	ErrBadAddress    = errors.New("not a valid hex address")
)
