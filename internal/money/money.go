// Package money parses user-supplied amounts and percentages and applies
// percentages to amounts without ever touching binary floating point.
//
// All amounts are integer cents. Percentages are decimal.Decimal values
// (10.5 means 10.5%) and are converted to integer basis points before they
// are applied to an amount.
package money

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// splitAmount splits a free-form amount string into its sign, integer digits
// and fractional digits.
//
// Users enter amounts in both "1.234,56" and "1,234.56" styles, so the
// right-most occurrence of "." or "," is treated as the decimal separator
// and every other separator is ignored as grouping.
func splitAmount(raw string) (negative bool, intDigits, fracDigits string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false, "", ""
	}

	if s[0] == '-' {
		negative = true
		s = s[1:]
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	stripSeps := func(s string) string {
		s = strings.ReplaceAll(s, ".", "")
		return strings.ReplaceAll(s, ",", "")
	}

	sep := max(strings.LastIndex(s, "."), strings.LastIndex(s, ","))
	if sep == -1 {
		return negative, stripSeps(s), ""
	}

	return negative, stripSeps(s[:sep]), stripSeps(s[sep+1:])
}

// ParseCents parses a localized amount string into integer cents.
//
// The fractional part is padded or truncated to exactly two digits.
// Malformed or empty input parses to 0, never to an error: callers that
// cannot accept a zero amount reject it themselves.
func ParseCents(raw string) int64 {
	negative, intDigits, fracDigits := splitAmount(raw)

	intDigits = strings.TrimLeft(intDigits, "0")
	if intDigits == "" {
		intDigits = "0"
	}
	fracDigits = (fracDigits + "00")[:2]

	cents, ok := new(big.Int).SetString(intDigits+fracDigits, 10)
	if !ok {
		return 0
	}

	if negative {
		cents.Neg(cents)
	}

	return cents.Int64()
}

// ParsePercent parses a localized percentage string, e.g. "10,5" to 10.5.
//
// The second return value is false when the input is empty or whitespace,
// which callers use to tell "unspecified" from an explicit zero.
func ParsePercent(raw string) (decimal.Decimal, bool) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, false
	}

	negative, intDigits, fracDigits := splitAmount(raw)

	intDigits = strings.TrimLeft(intDigits, "0")
	if intDigits == "" {
		intDigits = "0"
	}
	if fracDigits == "" {
		fracDigits = "0"
	}

	p, err := decimal.NewFromString(intDigits + "." + fracDigits)
	if err != nil {
		return decimal.Zero, true
	}

	if negative {
		p = p.Neg()
	}

	return p, true
}

// ParsePercentOrDefault parses a percentage, substituting def when the
// input is empty.
func ParsePercentOrDefault(raw string, def decimal.Decimal) decimal.Decimal {
	p, ok := ParsePercent(raw)
	if !ok {
		return def
	}
	return p
}

// BasisPoints converts a percentage to integer basis points, rounding half
// away from zero. The computation happens in decimal so that values like
// 10.5 or 1.2 never pick up binary float error.
func BasisPoints(p decimal.Decimal) int64 {
	return p.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ApplyPercent returns p percent of baseCents, truncated toward zero.
//
// The intermediate product baseCents*basisPoints can exceed int64, so it is
// computed in big.Int.
func ApplyPercent(baseCents int64, p decimal.Decimal) int64 {
	bp := BasisPoints(p)
	if bp == 0 {
		return 0
	}

	result := new(big.Int).Mul(big.NewInt(baseCents), big.NewInt(bp))
	result.Quo(result, big.NewInt(10000))
	return result.Int64()
}

// ApplyPercentPtr is ApplyPercent for optional percentages. A nil percentage
// contributes nothing.
func ApplyPercentPtr(baseCents int64, p *decimal.Decimal) int64 {
	if p == nil {
		return 0
	}
	return ApplyPercent(baseCents, *p)
}
