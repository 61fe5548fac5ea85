package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// Output formats accepted by the derivation tool
const (
	FormatJSON       = "json"
	FormatJSONPretty = "jsonpretty"
)

// minKeyLen is the shortest extended key accepted. Serialized xprv/tprv keys are 111 characters.
const minKeyLen = 16

// mnemonicWordCounts are the BIP39 phrase lengths
var mnemonicWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// DerivationRequest holds the parameters of one tool invocation.
// Key is the extended master key (xprv...), Mnemonic a BIP39 phrase; exactly one is set.
// Neither must ever be logged or echoed.
type DerivationRequest struct {
	Key        string
	Mnemonic   string
	Coin       Coin
	Cols       []string
	Format     string
	NumDerive  int    // 0 means the tool default
	StartIndex int    // first address index
	Path       string // custom derivation path, e.g. m/44'/60'/0'/0
}

// Columns returns the requested columns, falling back to DefaultColumns.
func (r *DerivationRequest) Columns() []string {
	if len(r.Cols) == 0 {
		return DefaultColumns
	}
	return r.Cols
}

// OutputFormat returns the requested format, defaulting to json.
func (r *DerivationRequest) OutputFormat() string {
	if r.Format == "" {
		return FormatJSON
	}
	return r.Format
}

// Validate checks request parameters. Error messages never contain the key.
func (r *DerivationRequest) Validate() error {
	if err := r.validateSecret(); err != nil {
		return err
	}
	if r.Coin == "" {
		return errors.New("coin is required")
	}
	if !r.Coin.Supported() {
		return fmt.Errorf("unsupported coin %q", string(r.Coin))
	}

	hasAddress := false
	seen := make(map[string]bool, len(r.Columns()))
	for _, col := range r.Columns() {
		if !KnownColumn(col) {
			return fmt.Errorf("unknown column %q", col)
		}
		if seen[col] {
			return fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true
		if col == ColAddress {
			hasAddress = true
		}
	}
	if !hasAddress {
		return errors.New("columns must include address")
	}

	if f := r.OutputFormat(); f != FormatJSON && f != FormatJSONPretty {
		return fmt.Errorf("format must be %s or %s", FormatJSON, FormatJSONPretty)
	}
	if r.NumDerive < 0 {
		return errors.New("numderive must not be negative")
	}
	if r.StartIndex < 0 {
		return errors.New("startindex must not be negative")
	}
	if r.Path != "" && !validPath(r.Path) {
		return fmt.Errorf("invalid derivation path %q", r.Path)
	}
	return nil
}

// validateSecret checks that exactly one of Key and Mnemonic is usable
func (r *DerivationRequest) validateSecret() error {
	key := strings.TrimSpace(r.Key)
	words := strings.Fields(r.Mnemonic)
	switch {
	case key == "" && len(words) == 0:
		return errors.New("extended key or mnemonic is required")
	case key != "" && len(words) > 0:
		return errors.New("extended key and mnemonic are mutually exclusive")
	case key != "":
		if strings.ContainsAny(r.Key, " \t\r\n") {
			return errors.New("extended key must not contain whitespace")
		}
		if len(key) < minKeyLen {
			return errors.New("extended key is too short")
		}
	default:
		if !mnemonicWordCounts[len(words)] {
			return fmt.Errorf("mnemonic must have 12, 15, 18, 21 or 24 words, got %d", len(words))
		}
		for _, w := range words {
			if strings.ContainsFunc(w, unicode.IsControl) {
				return errors.New("mnemonic contains control characters")
			}
		}
	}
	return nil
}

// Secret returns the master secret of the request
func (r *DerivationRequest) Secret() MasterSecret {
	return MasterSecret{Key: r.Key, Mnemonic: r.Mnemonic}
}

// validPath accepts m, m/0, m/44'/60'/0'/0 and the like.
func validPath(p string) bool {
	parts := strings.Split(p, "/")
	if parts[0] != "m" {
		return false
	}
	for _, part := range parts[1:] {
		part = strings.TrimSuffix(part, "'")
		if part == "" || len(part) > 10 {
			return false
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// MarshalZerologObject logs the request without the key or mnemonic.
func (r DerivationRequest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("secret", r.Secret().Kind()).
		Str("coin", string(r.Coin)).
		Strs("cols", r.Columns()).
		Str("format", r.OutputFormat())
	if r.NumDerive > 0 {
		e.Int("numderive", r.NumDerive)
	}
	if r.StartIndex > 0 {
		e.Int("startindex", r.StartIndex)
	}
	if r.Path != "" {
		e.Str("path", r.Path)
	}
}

// String never includes the key or mnemonic.
func (r DerivationRequest) String() string {
	return fmt.Sprintf("derive %s cols=%s format=%s", r.Coin, strings.Join(r.Columns(), ","), r.OutputFormat())
}

// GoString keeps %#v from printing the key or mnemonic.
func (r DerivationRequest) GoString() string {
	return fmt.Sprintf("model.DerivationRequest{%s:<redacted>, Coin:%q, Cols:%q}", r.Secret().Kind(), string(r.Coin), r.Columns())
}
