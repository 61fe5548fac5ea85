package crypto

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// keep tests fast, files record the cost they were sealed with
	scryptN = 1 << 10
	os.Exit(m.Run())
}

const testKey = "xprv9tyUQV64JT5qs3RSTJkXCWKMyUgoQp7F3hA1xzG6ZGu6u6Q9VMNjGr67Lctvy5P8oyaYAL9CAWrUE9i6GoNMKUga5biW6Hx4tws2six3b9c"

func TestSealOpenKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")

	require.NoError(t, SealKey(path, "ETH", []byte(testKey), []byte("correct horse")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), string(utf8BOM)))
	assert.NotContains(t, string(raw), testKey)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	keyFile, keyData, err := OpenKey(path, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, "ETH", keyFile.Coin)
	assert.Equal(t, 1<<10, keyFile.ScryptN)
	assert.Equal(t, testKey, string(keyData.ExtendedKey))
	assert.NotEmpty(t, keyData.CreatedAt)
}

func TestOpenKeyWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, SealKey(path, "BTC", []byte(testKey), []byte("right")))

	_, _, err := OpenKey(path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestSealKeyRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0600))

	err := SealKey(path, "ETH", []byte(testKey), []byte("pw"))
	assert.True(t, IsFileExistsError(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestSealKeyEmptyFileIsOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	require.NoError(t, SealKey(path, "ETH", []byte(testKey), []byte("pw")))
	_, keyData, err := OpenKey(path, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, testKey, string(keyData.ExtendedKey))
}

func TestSealKeyRejectsEmptyInput(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, SealKey(filepath.Join(dir, "a"), "ETH", nil, []byte("pw")))
	assert.Error(t, SealKey(filepath.Join(dir, "b"), "ETH", []byte(testKey), nil))
}

func TestReadKeyFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadKeyFile(filepath.Join(dir, "missing"))
	assert.EqualError(t, err, "file does not exist")

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = ReadKeyFile(empty)
	assert.EqualError(t, err, "file is empty")

	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0600))
	_, err = ReadKeyFile(bad)
	assert.Error(t, err)
}
