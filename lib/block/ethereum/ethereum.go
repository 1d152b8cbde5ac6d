// Package ethereum implements the block.Chain interface for ethereum networks.
package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tarancss/shipledger/lib/block/types"
)

// Ethereum implements a connection to an ethereum-type chain. The raw rpc client is used to fetch blocks as JSON
// maps, the ethclient on top of it serves the typed calls and the contract bindings.
type Ethereum struct {
	rc *rpc.Client
	c  *ethclient.Client
}

// Init returns a connection to an ethereum node. Over http no request is made until the first call.
func Init(node string) (*Ethereum, error) {
	rc, err := rpc.Dial(node)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to ethereum node in %s: %w", node, err)
	}

	return &Ethereum{rc: rc, c: ethclient.NewClient(rc)}, nil
}

// Client returns the typed client, used as backend for contract bindings.
func (e *Ethereum) Client() *ethclient.Client {
	return e.c
}

// Close ends a connection
func (e *Ethereum) Close() {
	e.rc.Close()
}

// Balance returns the latest balance in wei of account.
func (e *Ethereum) Balance(ctx context.Context, account string) (*big.Int, error) {
	if !common.IsHexAddress(account) {
		return nil, types.ErrBadAddress
	}

	return e.c.BalanceAt(ctx, common.HexToAddress(account), nil)
}

// BlockNumber returns the number of the most recent block.
func (e *Ethereum) BlockNumber(ctx context.Context) (uint64, error) {
	return e.c.BlockNumber(ctx)
}

// GetBlock loads in response the block number requested. If full, it provides all the details of the transactions.
func (e *Ethereum) GetBlock(ctx context.Context, block uint64, full bool, response *map[string]interface{}) error {
	if err := e.rc.CallContext(ctx, response, "eth_getBlockByNumber", hexutil.EncodeUint64(block), full); err != nil {
		return err
	}

	if *response == nil {
		return types.ErrNoBlock
	}

	return nil
}

// DecodeBlock returns a struct with the values from the block data. It is used after a call to GetBlock.
func (e *Ethereum) DecodeBlock(m map[string]interface{}) (b types.Block, err error) {
	if m == nil {
		return b, types.ErrBlockDecode
	}

	var ok bool

	if b.Hash, ok = m["hash"].(string); !ok {
		return b, types.ErrNoHash
	}

	if b.PHash, ok = m["parentHash"].(string); !ok {
		return b, types.ErrNoParentHash
	}

	if b.Number, ok = m["number"].(string); !ok {
		return b, types.ErrNoBlockNumber
	}

	if b.TS, ok = m["timestamp"].(string); !ok {
		return b, types.ErrNoTS
	}
	// optional
	b.Miner, _ = m["miner"].(string)
	b.GasUsed, _ = m["gasUsed"].(string)
	b.GasLimit, _ = m["gasLimit"].(string)

	return b, nil
}

// DecodeTxs returns a slice of transactions from the block data. It is used after a call to GetBlock. When the
// block was fetched without full transactions only the hashes are loaded.
func (e *Ethereum) DecodeTxs(m map[string]interface{}) ([]types.Trans, error) {
	txList, ok := m["transactions"].([]interface{})
	if !ok {
		return nil, types.ErrNoTrx
	}

	txs := make([]types.Trans, len(txList))

	for i, t := range txList {
		switch v := t.(type) {
		case string:
			txs[i].Hash = v
		case map[string]interface{}:
			if err := decodeTx(v, &txs[i]); err != nil {
				return nil, fmt.Errorf("tx %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("unknown transaction type %T: %w", t, types.ErrNoTrx)
		}
	}

	return txs, nil
}

func decodeTx(m map[string]interface{}, tx *types.Trans) (err error) {
	var ok bool

	if tx.Hash, ok = m["hash"].(string); !ok {
		return types.ErrNoTrxHash
	}

	if tx.Block, ok = m["blockNumber"].(string); !ok {
		return types.ErrNoBlockNumber
	}

	if tx.From, ok = m["from"].(string); !ok {
		return types.ErrNoTrxFrom
	}
	// "to" is null when the transaction deploys a contract
	if tx.To, ok = m["to"].(string); !ok {
		tx.Create = true
	}

	if tx.Value, ok = m["value"].(string); !ok {
		return types.ErrNoTrxValue
	}

	if tx.Data, ok = m["input"].(string); !ok {
		return types.ErrNoTrxInput
	}

	if tx.Gas, ok = m["gas"].(string); !ok {
		return types.ErrNoTrxGas
	}

	// EIP-1559 transactions report the effective price in gasPrice too
	price, ok := m["gasPrice"].(string)
	if !ok {
		return types.ErrNoTrxGasPrice
	}

	if tx.Price, err = strconv.ParseUint(price, 0, 64); err != nil {
		return err
	}

	tx.Nonce, _ = m["nonce"].(string)
	tx.Index, _ = m["transactionIndex"].(string)

	return nil
}
