package model

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// Column names produced by the derivation tool
const (
	ColPath       = "path"
	ColAddress    = "address"
	ColPrivKey    = "privkey"
	ColPubKey     = "pubkey"
	ColPubKeyHash = "pubkeyhash"
	ColXprv       = "xprv"
	ColXpub       = "xpub"
	ColIndex      = "index"
)

// knownColumns are the columns the tool accepts in --cols
var knownColumns = map[string]bool{
	ColPath:       true,
	ColAddress:    true,
	ColPrivKey:    true,
	ColPubKey:     true,
	ColPubKeyHash: true,
	ColXprv:       true,
	ColXpub:       true,
	ColIndex:      true,
}

// KnownColumn reports whether the tool accepts the column name.
func KnownColumn(col string) bool {
	return knownColumns[col]
}

// DefaultColumns is what gets requested when the caller names none.
var DefaultColumns = []string{ColPath, ColAddress, ColPrivKey, ColPubKey}

// WalletRecord is one derived address entry.
// PrivKey is sensitive: the caller owns it and should call Wipe when done.
type WalletRecord struct {
	Path    string
	Address string
	PrivKey string
	PubKey  string
	// Extra holds every other column verbatim (index, xpub, pubkeyhash, ...)
	Extra map[string]json.RawMessage
}

// Wipe drops the private key (and any extended private key column) from the record
func (r *WalletRecord) Wipe() {
	r.PrivKey = ""
	delete(r.Extra, ColXprv)
}

// String never includes private material.
func (r WalletRecord) String() string {
	return fmt.Sprintf("%s %s", r.Path, r.Address)
}

// GoString keeps %#v from printing the private key.
func (r WalletRecord) GoString() string {
	return fmt.Sprintf("model.WalletRecord{Path:%q, Address:%q, PubKey:%q}", r.Path, r.Address, r.PubKey)
}

// MarshalZerologObject logs the public part of the record.
func (r WalletRecord) MarshalZerologObject(e *zerolog.Event) {
	e.Str(ColPath, r.Path).Str(ColAddress, r.Address)
	if r.PubKey != "" {
		e.Str(ColPubKey, r.PubKey)
	}
}

// MarshalJSON writes the record back using the tool's field names.
// Only columns that are set are written.
func (r WalletRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 4+len(r.Extra))
	for k, v := range r.Extra {
		out[k] = v
	}
	if r.Path != "" {
		out[ColPath] = r.Path
	}
	if r.Address != "" {
		out[ColAddress] = r.Address
	}
	if r.PrivKey != "" {
		out[ColPrivKey] = r.PrivKey
	}
	if r.PubKey != "" {
		out[ColPubKey] = r.PubKey
	}
	return json.Marshal(out)
}

// Column returns the textual value of a column and whether it is present.
// Non-string extra columns are returned as raw JSON text.
func (r WalletRecord) Column(name string) (string, bool) {
	switch name {
	case ColPath:
		return r.Path, r.Path != ""
	case ColAddress:
		return r.Address, r.Address != ""
	case ColPrivKey:
		return r.PrivKey, r.PrivKey != ""
	case ColPubKey:
		return r.PubKey, r.PubKey != ""
	}
	raw, ok := r.Extra[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

// ExtraColumns returns the names of extra columns in sorted order
func (r WalletRecord) ExtraColumns() []string {
	names := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
