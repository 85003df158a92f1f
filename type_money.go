package fintrack

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultCurrency is the display currency when none is configured.
const DefaultCurrency = "BDT"

// displayCurrency is the ISO code used by String. It only affects display.
var displayCurrency = DefaultCurrency

// SetDisplayCurrency changes the currency used to format Money values.
// Unknown codes are rejected.
func SetDisplayCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	displayCurrency = code
	return nil
}

// DisplayCurrency returns the currency used to format Money values.
func DisplayCurrency() string { return displayCurrency }

// Money is an exact, single-currency amount in major units.
//
// The zero value is 0.
type Money struct {
	value decimal.Decimal
}

// M creates Money from a numeric value.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	switch v := any(value).(type) {
	case float64:
		return Money{value: decimal.NewFromFloat(v)}
	case int:
		return Money{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Money{value: decimal.NewFromInt(v)}
	case decimal.Decimal:
		return Money{value: v}
	}
	panic("unreachable")
}

// ParseMoney parses a plain decimal amount like "12.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// String formats the amount in the display currency, e.g. "৳1,234.50".
func (m Money) String() string {
	cur := money.GetCurrency(displayCurrency)
	if cur == nil {
		return m.value.StringFixed(2)
	}
	return cur.Formatter().Format(m.value.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// Plain returns the amount as a bare decimal, without currency symbol.
func (m Money) Plain() string { return m.value.String() }

func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) MulInt(n int) Money              { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n)))} }

// Div divides by n, returning zero when n is zero.
func (m Money) Div(n int) Money {
	if n == 0 {
		return Money{}
	}
	return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))}
}

// Floor returns max(0, m).
func (m Money) Floor() Money {
	if m.value.IsNegative() {
		return Money{}
	}
	return m
}

// Percent returns m/max(total, 1)*100, rounded to two decimals. A total
// below one unit, zero included, counts as one, so that 0.5 of 0.5 is 50%.
func (m Money) Percent(total Money) decimal.Decimal {
	den := total.value
	if one := decimal.NewFromInt(1); den.LessThan(one) {
		den = one
	}
	return m.value.Div(den).Mul(decimal.NewFromInt(100)).Round(2)
}

// SignedString returns the string representation with a sign, "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Sum returns the sum of all amounts.
func Sum(amounts ...Money) Money {
	var s Money
	for _, a := range amounts {
		s = s.Add(a)
	}
	return s
}

// MarshalJSON writes Money as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

// UnmarshalJSON reads Money from a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.value = d
	return nil
}

var _ json.Marshaler = Money{}
var _ json.Unmarshaler = (*Money)(nil)
