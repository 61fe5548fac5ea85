package account

import (
	"crypto/sha256"

	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

// addrParams holds the version bytes of a bitcoin-like network
type addrParams struct {
	PubKeyHashAddrID byte
	PrivateKeyID     byte
}

// bitcoinParams maps coins to their P2PKH and WIF version bytes
var bitcoinParams = map[model.Coin]addrParams{
	"BTC":     {chaincfg.MainNetParams.PubKeyHashAddrID, chaincfg.MainNetParams.PrivateKeyID},
	"BTCTEST": {chaincfg.TestNet3Params.PubKeyHashAddrID, chaincfg.TestNet3Params.PrivateKeyID},
	"LTC":     {0x30, 0xb0},
	"DOGE":    {0x1e, 0x9e},
	"DASH":    {0x4c, 0xcc},
}

func isBitcoinLike(coin model.Coin) bool {
	_, ok := bitcoinParams[coin]
	return ok
}

// bitcoinAccount parses a WIF private key and computes its P2PKH address
func bitcoinAccount(coin model.Coin, wif string) (*Account, error) {
	params := bitcoinParams[coin]

	payload, version, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, errors.New("invalid WIF private key")
	}
	defer clear(payload)
	if version != params.PrivateKeyID {
		return nil, errors.Errorf("WIF version 0x%02x is not a %s key", version, coin)
	}

	compressed := false
	switch {
	case len(payload) == 33 && payload[32] == 0x01:
		compressed = true
	case len(payload) == 32:
	default:
		return nil, errors.New("invalid WIF payload length")
	}

	priv, pub := btcec.PrivKeyFromBytes(payload[:32])
	pubKey := pub.SerializeUncompressed()
	if compressed {
		pubKey = pub.SerializeCompressed()
	}

	hash160, err := hash160(pubKey)
	if err != nil {
		return nil, err
	}

	return &Account{
		Address:   base58.CheckEncode(hash160, params.PubKeyHashAddrID),
		PublicKey: pubKey,
		ecdsaKey:  priv.ToECDSA(),
	}, nil
}

// hash160 computes RIPEMD160(SHA256(b))
func hash160(b []byte) ([]byte, error) {
	sha := sha256.Sum256(b)
	ripemd := ripemd160.New()
	if _, err := ripemd.Write(sha[:]); err != nil {
		return nil, errors.Wrap(err, "failed to hash public key")
	}
	return ripemd.Sum(nil), nil
}
