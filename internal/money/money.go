// Package money formats and parses whole-unit currency amounts.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmpty       = errors.New("amount is empty")
	ErrNotNumber   = errors.New("amount is not a number")
	ErrFractional  = errors.New("amount must be a whole number")
	ErrNotPositive = errors.New("amount must be greater than zero")
)

// Formatter renders amounts as "$ 1.234.567".
type Formatter struct {
	Symbol    string
	Thousands string
}

// DefaultFormatter matches the app's original presentation.
var DefaultFormatter = Formatter{Symbol: "$", Thousands: "."}

func (f Formatter) Format(amount int64) string {
	neg := amount < 0
	digits := decimal.NewFromInt(amount).Abs().String()
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if f.Symbol != "" {
		b.WriteString(f.Symbol)
		b.WriteByte(' ')
	}
	b.WriteString(group(digits, f.Thousands))
	return b.String()
}

// FormatSigned prefixes non-negative amounts with "+".
func (f Formatter) FormatSigned(amount int64) string {
	if amount >= 0 {
		return "+" + f.Format(amount)
	}
	return f.Format(amount)
}

func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Parse reads a positive whole amount typed by the user. The currency
// symbol, spaces and the formatter's thousands separator are ignored.
func (f Formatter) Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if f.Symbol != "" {
		s = strings.TrimPrefix(s, f.Symbol)
	}
	s = strings.ReplaceAll(s, " ", "")
	if f.Thousands != "" {
		s = strings.ReplaceAll(s, f.Thousands, "")
	}
	if s == "" {
		return 0, ErrEmpty
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrNotNumber
	}
	if !d.IsInteger() {
		return 0, ErrFractional
	}
	if !d.IsPositive() {
		return 0, ErrNotPositive
	}
	if !d.LessThanOrEqual(decimal.NewFromInt(maxAmount)) {
		return 0, ErrNotNumber
	}
	return d.IntPart(), nil
}

// keeps sums of many amounts well inside int64
const maxAmount = 1 << 50

// Percent returns part/whole*100 clamped to [0, 100]. A non-positive whole
// yields 0.
func Percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	p := decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(whole), 4)
	switch {
	case p.IsNegative():
		return 0
	case p.GreaterThan(decimal.NewFromInt(100)):
		return 100
	}
	f, _ := p.Float64()
	return f
}
