// Package cashmerge implements the Cash Merge puzzle: a 5x5 board of coins in
// three currencies that merge up their denomination ladders, with timed
// exchange-rate events and exchange tokens that convert a coin's currency.
package cashmerge

import (
	"fmt"
	"strings"
)

// Currency identifies one of the three coin currencies.
type Currency int

const (
	CurrencyKRW Currency = iota
	CurrencyUSD
	CurrencyJPY
)

// currencyCount is the size of the closed currency enumeration.
const currencyCount = 3

// Currencies lists every currency in catalog order.
var Currencies = [currencyCount]Currency{CurrencyKRW, CurrencyUSD, CurrencyJPY}

// LadderLen is the number of denominations on every ladder.
const LadderLen = 6

// CurrencyInfo describes a currency's display data and merge ladder.
type CurrencyInfo struct {
	Code   string
	Name   string
	Symbol string
	Ladder [LadderLen]int // Strictly increasing denominations
}

var catalog = [currencyCount]CurrencyInfo{
	CurrencyKRW: {
		Code:   "KRW",
		Name:   "Won",
		Symbol: "₩",
		Ladder: [LadderLen]int{100, 500, 1000, 5000, 10000, 50000},
	},
	CurrencyUSD: {
		Code:   "USD",
		Name:   "Dollar",
		Symbol: "$",
		Ladder: [LadderLen]int{1, 5, 10, 20, 50, 100},
	},
	CurrencyJPY: {
		Code:   "JPY",
		Name:   "Yen",
		Symbol: "¥",
		Ladder: [LadderLen]int{100, 500, 1000, 5000, 10000, 50000},
	},
}

// Valid reports whether c is a member of the enumeration.
func (c Currency) Valid() bool {
	return c >= 0 && int(c) < currencyCount
}

// Info returns the catalog entry for c.
func (c Currency) Info() CurrencyInfo {
	if !c.Valid() {
		return CurrencyInfo{Code: "???"}
	}
	return catalog[c]
}

// String returns the ISO code.
func (c Currency) String() string {
	return c.Info().Code
}

// Symbol returns the display symbol.
func (c Currency) Symbol() string {
	return c.Info().Symbol
}

// MarshalText encodes the currency as its ISO code.
func (c Currency) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cashmerge: invalid currency %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes an ISO code.
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := ParseCurrency(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCurrency resolves an ISO code (case-insensitive).
func ParseCurrency(s string) (Currency, error) {
	for _, c := range Currencies {
		if strings.EqualFold(catalog[c].Code, s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("cashmerge: unknown currency %q", s)
}

// Ladder returns the denomination ladder of c.
func Ladder(c Currency) [LadderLen]int {
	return c.Info().Ladder
}

// LadderIndex returns the rung of value on c's ladder.
func LadderIndex(c Currency, value int) (int, bool) {
	if !c.Valid() {
		return 0, false
	}
	for i, v := range catalog[c].Ladder {
		if v == value {
			return i, true
		}
	}
	return 0, false
}

// LowestValue returns the bottom rung of c's ladder.
func LowestValue(c Currency) int {
	return c.Info().Ladder[0]
}

// IsTop reports whether value is the last rung of c's ladder.
func IsTop(c Currency, value int) bool {
	idx, ok := LadderIndex(c, value)
	return ok && idx == LadderLen-1
}

// NextValue returns the denomination one rung above value.
// Returns false when value is at the top or not on the ladder.
func NextValue(c Currency, value int) (int, bool) {
	idx, ok := LadderIndex(c, value)
	if !ok || idx >= LadderLen-1 {
		return 0, false
	}
	return catalog[c].Ladder[idx+1], true
}

// ValueAt returns the denomination at rung idx, clamped into range.
func ValueAt(c Currency, idx int) int {
	ladder := Ladder(c)
	if idx < 0 {
		idx = 0
	}
	if idx > len(ladder)-1 {
		idx = len(ladder) - 1
	}
	return ladder[idx]
}
