package account

import (
	"strings"

	"github.com/AlexZinkM/hd-derive/internal/model"
)

// sameAddress compares addresses the way the coin defines equality.
// EVM addresses are case-insensitive (the case only carries the checksum).
func sameAddress(coin model.Coin, a, b string) bool {
	if isEVM(coin) {
		return strings.EqualFold(a, b)
	}
	return a == b
}
