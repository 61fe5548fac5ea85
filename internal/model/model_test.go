package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey      = "xprv9tyUQV64JT5qs3RSTJkXCWKMyUgoQp7F3hA1xzG6ZGu6u6Q9VMNjGr67Lctvy5P8oyaYAL9CAWrUE9i6GoNMKUga5biW6Hx4tws2six3b9c"
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

func TestParseCoin(t *testing.T) {
	c, ok := ParseCoin(" eth ")
	assert.True(t, ok)
	assert.Equal(t, Coin("ETH"), c)
	assert.Equal(t, 18, c.Decimals())

	_, ok = ParseCoin("nope")
	assert.False(t, ok)

	coins := SupportedCoins()
	assert.Contains(t, coins, Coin("BTCTEST"))
	assert.Equal(t, Coin("BCH"), coins[0])
}

func TestDerivationRequestValidate(t *testing.T) {
	ok := DerivationRequest{Key: testKey, Coin: "ETH", Cols: []string{"path", "address"}, Path: "m/44'/60'/0'/0"}
	require.NoError(t, ok.Validate())

	withMnemonic := DerivationRequest{Mnemonic: "  " + testMnemonic + "\n", Coin: "BTC"}
	require.NoError(t, withMnemonic.Validate())

	tests := map[string]DerivationRequest{
		"no key":           {Coin: "ETH"},
		"key whitespace":   {Key: "xprv abc", Coin: "ETH"},
		"key too short":    {Key: "xprv123", Coin: "ETH"},
		"key and mnemonic": {Key: testKey, Mnemonic: testMnemonic, Coin: "ETH"},
		"mnemonic 11 word": {Mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", Coin: "ETH"},
		"mnemonic control": {Mnemonic: strings.Replace(testMnemonic, "about", "ab\x00out", 1), Coin: "ETH"},
		"no coin":          {Key: testKey},
		"duplicate column": {Key: testKey, Coin: "ETH", Cols: []string{"address", "address"}},
		"path not rooted":  {Key: testKey, Coin: "ETH", Path: "44'/60'"},
		"path empty part":  {Key: testKey, Coin: "ETH", Path: "m//0"},
		"negative start":   {Key: testKey, Coin: "ETH", StartIndex: -1},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			err := req.Validate()
			require.Error(t, err)
			assert.NotContains(t, err.Error(), testKey)
			assert.NotContains(t, err.Error(), "abandon")
		})
	}
}

func TestDerivationRequestNeverPrintsMnemonic(t *testing.T) {
	req := DerivationRequest{Mnemonic: testMnemonic, Coin: "ETH"}

	assert.NotContains(t, fmt.Sprintf("%v", req), "abandon")
	assert.NotContains(t, fmt.Sprintf("%#v", req), "abandon")
	assert.Contains(t, fmt.Sprintf("%#v", req), "mnemonic:<redacted>")

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("request", req).Msg("")
	assert.NotContains(t, buf.String(), "abandon")
	assert.Contains(t, buf.String(), `"secret":"mnemonic"`)
}

func TestParseMasterSecret(t *testing.T) {
	s := ParseMasterSecret("  " + testKey + "\n")
	assert.Equal(t, MasterSecret{Key: testKey}, s)
	assert.Equal(t, "key", s.Kind())

	s = ParseMasterSecret("abandon  abandon\tabandon abandon abandon abandon abandon abandon abandon abandon abandon about\n")
	assert.Equal(t, MasterSecret{Mnemonic: testMnemonic}, s)
	assert.NotContains(t, s.String(), "abandon")
	assert.NotContains(t, fmt.Sprintf("%#v", s), "abandon")

	var req DerivationRequest
	s.Apply(&req)
	assert.Empty(t, req.Key)
	assert.Equal(t, testMnemonic, req.Mnemonic)

	assert.True(t, ParseMasterSecret(" ").Empty())
}

func TestDerivationRequestNeverPrintsKey(t *testing.T) {
	req := DerivationRequest{Key: testKey, Coin: "ETH", NumDerive: 3, Path: "m/0"}

	assert.NotContains(t, fmt.Sprintf("%v", req), testKey)
	assert.NotContains(t, fmt.Sprintf("%+v", req), testKey)
	assert.NotContains(t, fmt.Sprintf("%#v", req), testKey)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("request", req).Msg("")
	assert.NotContains(t, buf.String(), testKey)
	assert.Contains(t, buf.String(), `"coin":"ETH"`)
	assert.Contains(t, buf.String(), `"numderive":3`)
}

func TestWalletRecordRendering(t *testing.T) {
	rec := WalletRecord{
		Path:    "m/44'/60'/0'/0/0",
		Address: "0xabc",
		PrivKey: "0xsecret",
		PubKey:  "0x02pub",
		Extra:   map[string]json.RawMessage{"index": json.RawMessage("0"), "xprv": json.RawMessage(`"xprvsecret"`)},
	}

	assert.Equal(t, "m/44'/60'/0'/0/0 0xabc", rec.String())
	assert.NotContains(t, fmt.Sprintf("%#v", rec), "secret")

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("record", rec).Msg("")
	assert.NotContains(t, buf.String(), "secret")

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"m/44'/60'/0'/0/0","address":"0xabc","privkey":"0xsecret","pubkey":"0x02pub","index":0,"xprv":"xprvsecret"}`, string(data))

	v, ok := rec.Column("index")
	assert.True(t, ok)
	assert.Equal(t, "0", v)
	v, ok = rec.Column("xprv")
	assert.True(t, ok)
	assert.Equal(t, "xprvsecret", v)
	_, ok = rec.Column("xpub")
	assert.False(t, ok)
	assert.Equal(t, []string{"index", "xprv"}, rec.ExtraColumns())

	rec.Wipe()
	assert.Empty(t, rec.PrivKey)
	_, ok = rec.Column("xprv")
	assert.False(t, ok)
}

func TestTxIntentValidate(t *testing.T) {
	ok := TxIntent{Coin: "ETH", To: "0xabc", Amount: "0.05", FeeRate: "0.000000002"}
	assert.NoError(t, ok.Validate())

	bad := []TxIntent{
		{Coin: "NOPE", To: "x", Amount: "1"},
		{Coin: "BTC", To: " ", Amount: "1"},
		{Coin: "BTC", To: "1abc", Amount: "0"},
		{Coin: "BTC", To: "1abc", Amount: "0.000000001"},
		{Coin: "SOL", To: "abc", Amount: "1", FeeRate: "x"},
	}
	for _, intent := range bad {
		assert.Error(t, intent.Validate(), "%+v", intent)
	}
}
