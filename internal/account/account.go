// Package account turns the private keys found in derived wallet records into accounts
// and checks them against the address the derivation tool reported.
package account

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedCoin is returned for coins without an account implementation
	ErrUnsupportedCoin = errors.New("unsupported coin")
	// ErrNoPrivateKey is returned for records derived without the privkey column
	ErrNoPrivateKey = errors.New("record has no private key")
	// ErrAddressMismatch is returned when the private key does not produce the reported address
	ErrAddressMismatch = errors.New("private key does not match address")
)

// Account is a signing identity reconstructed from a derived private key.
// Call Wipe when done.
type Account struct {
	Coin      model.Coin
	Path      string
	Address   string
	PublicKey []byte

	ecdsaKey *ecdsa.PrivateKey // secp256k1 coins
	edKey    []byte            // SOL, 64 byte ed25519 key
}

// Sender signs and broadcasts a transfer with a derived private key.
// No implementation ships with this module.
type Sender interface {
	SignAndSend(ctx context.Context, privKey string, intent model.TxIntent) (*model.TransactionReceipt, error)
}

// FromRecord converts rec's private key into an Account for coin and
// verifies that it yields rec.Address.
func FromRecord(coin model.Coin, rec model.WalletRecord) (*Account, error) {
	if rec.PrivKey == "" {
		return nil, ErrNoPrivateKey
	}

	var (
		acc *Account
		err error
	)
	switch {
	case isEVM(coin):
		acc, err = evmAccount(rec.PrivKey)
	case isBitcoinLike(coin):
		acc, err = bitcoinAccount(coin, rec.PrivKey)
	case coin == "SOL":
		acc, err = solanaAccount(rec.PrivKey)
	default:
		return nil, errors.Wrapf(ErrUnsupportedCoin, "%s", coin)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "record %s", rec.Path)
	}

	acc.Coin = coin
	acc.Path = rec.Path
	if !sameAddress(coin, acc.Address, rec.Address) {
		acc.Wipe()
		return nil, errors.Wrapf(ErrAddressMismatch, "record %s", rec.Path)
	}
	acc.Address = rec.Address
	return acc, nil
}

// Supported reports whether FromRecord can handle the coin
func Supported(coin model.Coin) bool {
	return isEVM(coin) || isBitcoinLike(coin) || coin == "SOL"
}

// ECDSA returns the secp256k1 key of EVM and bitcoin-like accounts
func (a *Account) ECDSA() (*ecdsa.PrivateKey, error) {
	if a.ecdsaKey == nil {
		return nil, errors.Errorf("%s account has no secp256k1 key", a.Coin)
	}
	return a.ecdsaKey, nil
}

// Ed25519 returns the 64 byte ed25519 key of SOL accounts
func (a *Account) Ed25519() ([]byte, error) {
	if a.edKey == nil {
		return nil, errors.Errorf("%s account has no ed25519 key", a.Coin)
	}
	return a.edKey, nil
}

// Wipe drops private key material
func (a *Account) Wipe() {
	if a.ecdsaKey != nil {
		a.ecdsaKey.D.SetInt64(0)
		a.ecdsaKey = nil
	}
	clear(a.edKey)
	a.edKey = nil
}

// String never includes private material.
func (a *Account) String() string {
	return fmt.Sprintf("%s account %s", a.Coin, a.Address)
}
