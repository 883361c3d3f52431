package models

import (
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of fractional digits every Amount carries.
const AmountPrecision = 4

// Amount is a fixed-point money value with AmountPrecision fractional digits.
// The zero value is 0.0000 and ready to use.
type Amount struct {
	d decimal.Decimal
}

// ZeroAmount is 0.0000.
var ZeroAmount = Amount{}

// NewAmountFromString parses a decimal literal such as "1.5" or "2.12345".
// Digits beyond AmountPrecision are rounded half away from zero.
func NewAmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d: d.Round(AmountPrecision)}, nil
}

// MustAmount is NewAmountFromString for literals known to be valid.
func MustAmount(s string) Amount {
	a, err := NewAmountFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{d: a.d.Sub(b.d)}
}

// Cmp returns -1, 0 or +1 as a is less than, equal to or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// GreaterThanOrEqual reports a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool {
	return a.d.GreaterThanOrEqual(b.d)
}

func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

func (a Amount) IsNegative() bool {
	return a.d.IsNegative()
}

// String renders the amount with exactly AmountPrecision fractional digits.
func (a Amount) String() string {
	return a.d.StringFixed(AmountPrecision)
}

// MarshalText keeps the fixed rendering in JSON payloads.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := NewAmountFromString(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
