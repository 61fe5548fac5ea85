package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/hd-derive/internal/account"
	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "xprv-test-key"

// ethDeriver returns real ETH key/address pairs so verification can run
type ethDeriver struct {
	privKeys []string
	badAddr  bool
}

func newETHDeriver(t *testing.T, n int) *ethDeriver {
	t.Helper()
	d := &ethDeriver{}
	for i := 0; i < n; i++ {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		d.privKeys = append(d.privKeys, fmt.Sprintf("0x%x", crypto.FromECDSA(key)))
	}
	return d
}

func (d *ethDeriver) Derive(ctx context.Context, req model.DerivationRequest) ([]model.WalletRecord, error) {
	if req.Key != testKey {
		return nil, errors.New("wrong key")
	}
	records := make([]model.WalletRecord, 0, req.NumDerive)
	for i := 0; i < req.NumDerive; i++ {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(d.privKeys[i], "0x"))
		if err != nil {
			return nil, err
		}
		addr := crypto.PubkeyToAddress(key.PublicKey).Hex()
		if d.badAddr {
			addr = "0x0000000000000000000000000000000000000001"
		}
		records = append(records, model.WalletRecord{
			Path:    fmt.Sprintf("m/44'/60'/0'/0/%d", i),
			Address: addr,
			PrivKey: d.privKeys[i],
		})
	}
	return records, nil
}

func TestRunDeriveTable(t *testing.T) {
	d := newETHDeriver(t, 2)
	var out bytes.Buffer

	err := runDerive(testContext(t), &out, d, model.MasterSecret{Key: testKey}, &deriveOptions{
		coins:  []string{"eth"},
		cols:   []string{"path", "address", "privkey"},
		num:    2,
		output: "table",
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "# ETH")
	assert.Contains(t, text, "PATH")
	assert.Contains(t, text, "m/44'/60'/0'/0/1")
	assert.NotContains(t, text, "PRIVKEY")
	assert.NotContains(t, text, strings.TrimPrefix(d.privKeys[0], "0x"))
}

func TestRunDeriveShowPrivate(t *testing.T) {
	d := newETHDeriver(t, 1)
	var out bytes.Buffer

	err := runDerive(testContext(t), &out, d, model.MasterSecret{Key: testKey}, &deriveOptions{
		coins:       []string{"ETH"},
		cols:        []string{"path", "address", "privkey"},
		num:         1,
		output:      "table",
		showPrivate: true,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), d.privKeys[0])
}

func TestRunDeriveJSONVerified(t *testing.T) {
	d := newETHDeriver(t, 3)
	var out bytes.Buffer

	err := runDerive(testContext(t), &out, d, model.MasterSecret{Key: testKey}, &deriveOptions{
		coins:  []string{"ETH", "ETC"},
		cols:   []string{"path", "address", "privkey"},
		num:    3,
		output: "json",
		verify: true,
	})
	require.NoError(t, err)

	var got map[string][]map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got["ETH"], 3)
	require.Len(t, got["ETC"], 3)
	assert.Equal(t, "m/44'/60'/0'/0/2", got["ETH"][2]["path"])
	assert.NotContains(t, got["ETH"][0], "privkey")
}

func TestRunDeriveVerifyMismatch(t *testing.T) {
	d := newETHDeriver(t, 1)
	d.badAddr = true

	err := runDerive(testContext(t), &bytes.Buffer{}, d, model.MasterSecret{Key: testKey}, &deriveOptions{
		coins:  []string{"ETH"},
		cols:   []string{"path", "address", "privkey"},
		num:    1,
		output: "json",
		verify: true,
	})
	assert.ErrorIs(t, err, account.ErrAddressMismatch)
}

func TestRunDeriveOptionErrors(t *testing.T) {
	d := newETHDeriver(t, 1)

	err := runDerive(testContext(t), &bytes.Buffer{}, d, model.MasterSecret{Key: testKey}, &deriveOptions{
		coins: []string{"ETH"}, cols: []string{"address"}, num: 1, output: "yaml",
	})
	assert.ErrorContains(t, err, "unknown output format")

	err = runDerive(testContext(t), &bytes.Buffer{}, d, model.MasterSecret{Key: testKey}, &deriveOptions{
		coins: []string{"ETH"}, cols: []string{"address"}, num: 1, output: "table", verify: true,
	})
	assert.ErrorContains(t, err, "--verify needs the privkey column")
}

func TestWriteCoins(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeCoins(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, len(model.SupportedCoins())+1, len(lines))
	assert.Contains(t, out.String(), "ETH")
	assert.Regexp(t, `ETH\s+18\s+yes`, out.String())
	assert.Regexp(t, `XRP\s+6\s+no`, out.String())
}

func TestSealKeyPasswordMismatch(t *testing.T) {
	answers := []string{"xprv-abc", "one", "two"}
	prompt := func(string) ([]byte, error) {
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}

	path := filepath.Join(t.TempDir(), "master.key")
	err := sealKey(path, "ETH", prompt)
	assert.EqualError(t, err, "passwords do not match")
	assert.NoFileExists(t, path)
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	assert.NoError(t, setupLogger("debug", true))
	assert.NoError(t, setupLogger("info", false))
	assert.Error(t, setupLogger("loud", false))
}

type recordingDeriver struct {
	got []model.DerivationRequest
}

func (d *recordingDeriver) Derive(ctx context.Context, req model.DerivationRequest) ([]model.WalletRecord, error) {
	d.got = append(d.got, req)
	return []model.WalletRecord{{Path: "m/0", Address: "addr"}}, nil
}

func TestRunDeriveMnemonic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	d := &recordingDeriver{}
	var out bytes.Buffer

	err := runDerive(testContext(t), &out, d, model.MasterSecret{Mnemonic: mnemonic}, &deriveOptions{
		coins:  []string{"BTC"},
		cols:   []string{"path", "address"},
		num:    1,
		output: "table",
	})
	require.NoError(t, err)
	require.Len(t, d.got, 1)
	assert.Equal(t, mnemonic, d.got[0].Mnemonic)
	assert.Empty(t, d.got[0].Key)
	assert.NotContains(t, out.String(), "abandon")
}
