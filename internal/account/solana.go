package account

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// solanaAccount parses a base58 encoded 64 byte ed25519 private key
func solanaAccount(privKey string) (*Account, error) {
	key, err := solana.PrivateKeyFromBase58(privKey)
	if err != nil {
		return nil, errors.New("invalid base58 private key")
	}

	// Verify private key length (full 64-byte key)
	if len(key) != 64 {
		clear(key)
		return nil, errors.New("invalid private key length")
	}

	pub := key.PublicKey()
	return &Account{
		Address:   pub.String(),
		PublicKey: pub.Bytes(),
		edKey:     key,
	}, nil
}
