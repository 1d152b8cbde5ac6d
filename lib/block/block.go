// Package block defines the interface required to inspect the ledger network the contract is deployed on.
package block

import (
	"context"
	"math/big"

	"github.com/tarancss/shipledger/lib/block/ethereum"
	"github.com/tarancss/shipledger/lib/block/types"
)

// Chain is an interface that contains the network level methods used by the gateway. Contract calls are not part of
// it, see package lib/ledger.
type Chain interface {
	Close()
	Balance(ctx context.Context, account string) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	GetBlock(ctx context.Context, block uint64, full bool, response *map[string]interface{}) error
	DecodeBlock(b map[string]interface{}) (types.Block, error)
	DecodeTxs(b map[string]interface{}) ([]types.Trans, error)
}

// Init connects to the node at url.
func Init(node string) (*ethereum.Ethereum, error) {
	return ethereum.Init(node)
}

var _ Chain = (*ethereum.Ethereum)(nil)
