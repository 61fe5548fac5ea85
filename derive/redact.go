package derive

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/AlexZinkM/hd-derive/internal/model"
)

const (
	maxStderrLen  = 512
	maxExcerptLen = 64
	redacted      = "[REDACTED]"

	// minSecretLen is the shortest literal secret replaced verbatim. Shorter values are not key
	// material and replacing them would garble the diagnostic.
	minSecretLen = 16
)

// keyLike matches base58/hex runs long enough to be key material (xprv, WIF, hex privkeys).
// Addresses are caught too, which is fine for diagnostics.
var keyLike = regexp.MustCompile(`[0-9A-Za-z]{32,}`)

// secretsOf lists the literal forms of the request's secret that may show up in tool output
func secretsOf(req model.DerivationRequest) []string {
	secrets := []string{req.Key}
	if req.Mnemonic != "" {
		secrets = append(secrets, req.Mnemonic, model.NormalizeMnemonic(req.Mnemonic))
	}
	return secrets
}

// redact removes the given secrets and anything key-like from s and truncates it to max bytes.
func redact(s string, max int, secrets ...string) string {
	for _, secret := range secrets {
		if len(secret) >= minSecretLen {
			s = strings.ReplaceAll(s, secret, redacted)
		}
	}
	s = keyLike.ReplaceAllString(s, redacted)
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	// cut on a rune boundary
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
