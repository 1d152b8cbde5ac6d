package ledger

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tarancss/hd"
)

// ErrNoIdentity is returned when neither a private key nor a seed is provided.
var ErrNoIdentity = errors.New("no signing identity available")

// Identity is the signing identity of all the writes sent by the gateway.
type Identity struct {
	key     *ecdsa.PrivateKey
	Address common.Address
}

// NewIdentity returns the identity for a hex private key, with or without 0x prefix. When key is empty, the
// identity is derived from the HD seed (wallet 0, external chain, index 0).
func NewIdentity(key, seed string) (*Identity, error) {
	switch {
	case key != "":
		return identityFromKey(key)
	case seed != "":
		return identityFromSeed(seed)
	}

	return nil, ErrNoIdentity
}

func identityFromKey(key string) (*Identity, error) {
	k, err := crypto.HexToECDSA(strings.TrimPrefix(key, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Identity{key: k, Address: crypto.PubkeyToAddress(k.PublicKey)}, nil
}

func identityFromSeed(seed string) (*Identity, error) {
	s, err := hex.DecodeString(strings.TrimPrefix(seed, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid HD seed: %w", err)
	}

	hdw, err := hd.Init(s)
	if err != nil {
		return nil, fmt.Errorf("cannot init HD wallet: %w", err)
	}

	_, key, _, err := hdw.Address(0, hd.External, 0)
	if err != nil {
		return nil, fmt.Errorf("cannot derive HD address: %w", err)
	}

	k, err := crypto.ToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("invalid HD key: %w", err)
	}

	return &Identity{key: k, Address: crypto.PubkeyToAddress(k.PublicKey)}, nil
}

// TransactOpts returns the options to sign transactions for the given chain.
func (i *Identity) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(i.key, chainID)
}
