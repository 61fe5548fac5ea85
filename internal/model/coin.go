package model

import (
	"sort"
	"strings"
)

// Coin is a coin/chain symbol understood by the derivation tool, e.g. "ETH".
type Coin string

// coinDecimals lists the supported coins with the number of decimals of their base unit.
var coinDecimals = map[Coin]int{
	"BTC":     8,
	"BTCTEST": 8,
	"BCH":     8,
	"BSV":     8,
	"LTC":     8,
	"DOGE":    8,
	"DASH":    8,
	"ZEC":     8,
	"DCR":     8,
	"DGB":     8,
	"GRS":     8,
	"MONA":    8,
	"ETH":     18,
	"ETC":     18,
	"XLM":     7,
	"XRP":     6,
	"EOS":     4,
	"TRX":     6,
	"SOL":     9,
}

// ParseCoin normalizes a user supplied symbol. ok is false for unsupported coins.
func ParseCoin(s string) (Coin, bool) {
	c := Coin(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := coinDecimals[c]
	return c, ok
}

// Decimals returns the number of decimals of the coin's base unit (0 if unknown)
func (c Coin) Decimals() int {
	return coinDecimals[c]
}

// Supported reports whether the derivation tool knows the coin
func (c Coin) Supported() bool {
	_, ok := coinDecimals[c]
	return ok
}

// SupportedCoins returns all supported coins sorted by symbol.
func SupportedCoins() []Coin {
	coins := make([]Coin, 0, len(coinDecimals))
	for c := range coinDecimals {
		coins = append(coins, c)
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i] < coins[j] })
	return coins
}
