package account

import (
	"strings"

	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

func isEVM(coin model.Coin) bool {
	return coin == "ETH" || coin == "ETC"
}

// evmAccount parses a hex private key, with or without 0x prefix
func evmAccount(privKey string) (*Account, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privKey, "0x"))
	if err != nil {
		// the key text is never part of the error
		return nil, errors.New("invalid hex private key")
	}

	return &Account{
		Address:   crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PublicKey: crypto.CompressPubkey(&key.PublicKey),
		ecdsaKey:  key,
	}, nil
}
