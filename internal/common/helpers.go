package common

import (
	"fmt"
	"math/big"
	"strings"
)

// FromBaseUnits converts base units (wei, satoshi, lamports...) to a decimal string without float precision loss.
// Example: FromBaseUnits(big.NewInt(24981836), 9) = "0.024981836"
func FromBaseUnits(value *big.Int, decimals int) string {
	neg := value.Sign() < 0
	s := new(big.Int).Abs(value).String()
	if decimals == 0 {
		if neg {
			return "-" + s
		}
		return s
	}

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	s = s[:pos] + "." + s[pos:]
	if neg {
		s = "-" + s
	}
	return s
}

// ToBaseUnits converts a decimal string to base units by removing the decimal point.
// More fractional digits than decimals is an error, nothing is rounded.
// Example: ToBaseUnits("0.024981836", 9) = 24981836
func ToBaseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid decimal format")
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("too many decimal places (max %d)", decimals)
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return nil, fmt.Errorf("invalid number %q", s)
	}

	// Pad fractional part to exact decimals
	frac += strings.Repeat("0", decimals-len(frac))

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

func digitsOnly(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
