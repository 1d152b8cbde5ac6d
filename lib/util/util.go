// Package util contains helper functions used around the code.
package util

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
)

// ErrBadHash is returned for strings that are not a 0x prefixed 32 byte hex value.
var ErrBadHash = errors.New("hash must be 0x followed by 64 hex digits")

const hashLen = 2 + 2*common.HashLength

// ParseHash returns the hash held in s.
func ParseHash(s string) (common.Hash, error) {
	if len(s) != hashLen || !strings.HasPrefix(s, "0x") {
		return common.Hash{}, ErrBadHash
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, ErrBadHash
	}

	return common.BytesToHash(b), nil
}

// WeiToEther formats an amount of wei in ether, ie. 1500000000000000000 is "1.5".
func WeiToEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	r := new(big.Rat).SetFrac(wei, big.NewInt(params.Ether))
	s := r.FloatString(18)
	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}
