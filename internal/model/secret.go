package model

import "strings"

// MasterSecret is what the derivation tool derives from: an extended key (xprv...) or a
// BIP39 mnemonic phrase. At most one of the two is set. It must never be logged or echoed.
type MasterSecret struct {
	Key      string
	Mnemonic string
}

// ParseMasterSecret classifies typed or stored secret text.
// Text with inner whitespace is a mnemonic, anything else an extended key.
func ParseMasterSecret(s string) MasterSecret {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t\r\n") {
		return MasterSecret{Mnemonic: NormalizeMnemonic(s)}
	}
	return MasterSecret{Key: s}
}

// NormalizeMnemonic collapses the whitespace between mnemonic words to single spaces.
func NormalizeMnemonic(m string) string {
	return strings.Join(strings.Fields(m), " ")
}

// Empty reports whether neither a key nor a mnemonic is set
func (s MasterSecret) Empty() bool {
	return s.Key == "" && s.Mnemonic == ""
}

// Apply copies the secret into req
func (s MasterSecret) Apply(req *DerivationRequest) {
	req.Key = s.Key
	req.Mnemonic = s.Mnemonic
}

// Kind names the secret type without revealing it
func (s MasterSecret) Kind() string {
	switch {
	case s.Mnemonic != "":
		return "mnemonic"
	case s.Key != "":
		return "key"
	default:
		return "none"
	}
}

func (s MasterSecret) String() string {
	return "<redacted " + s.Kind() + ">"
}

func (s MasterSecret) GoString() string {
	return "model.MasterSecret{" + s.Kind() + ":<redacted>}"
}
