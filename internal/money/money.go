// Package money provides an exact monetary value type and the currency registry
// used to scale amounts between decimal strings and integer subunits.
//
// Amounts are always held as whole numbers of the currency's smallest subunit
// (cents for USD, yen for JPY). No floating point is used anywhere: parsing,
// arithmetic and rate multiplication all go through shopspring/decimal.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code such as "EUR".
// A Currency is only meaningful once a Registry has accepted it.
type Currency string

// Code returns the three letter code.
func (c Currency) Code() string {
	return string(c)
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// RoundingMode selects how a fractional subunit amount is reduced to a whole one.
type RoundingMode int

const (
	// RoundDown drops any fractional subunit, rounding toward zero.
	RoundDown RoundingMode = iota

	// RoundHalfUp rounds to the nearest subunit, halves away from zero.
	RoundHalfUp
)

// ParseRoundingMode accepts "half-up" or "down", case-insensitively.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "half-up", "halfup":
		return RoundHalfUp, nil
	case "down", "truncate":
		return RoundDown, nil
	default:
		return 0, fmt.Errorf("unknown rounding mode %q, want half-up or down", s)
	}
}

func (r RoundingMode) apply(d decimal.Decimal) decimal.Decimal {
	if r == RoundHalfUp {
		return d.Round(0)
	}
	return d.Truncate(0)
}

// Money is an immutable amount of smallest currency subunits.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money from a subunit amount. Any fraction is truncated.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount.Truncate(0), currency: currency}
}

// NewFromInt creates a Money from an integer subunit amount.
func NewFromInt(amount int64, currency Currency) Money {
	return Money{amount: decimal.NewFromInt(amount), currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the amount in smallest subunits.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency the amount is denominated in.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// SameCurrency reports whether both values share a currency.
func (m Money) SameCurrency(other Money) bool {
	return m.currency == other.currency
}

// Equals reports whether both values have the same currency and amount.
func (m Money) Equals(other Money) bool {
	return m.SameCurrency(other) && m.amount.Equal(other.amount)
}

// Compare returns -1, 0 or +1 comparing m to other.
func (m Money) Compare(other Money) (int, error) {
	if !m.SameCurrency(other) {
		return 0, &MismatchError{Op: "compare", Left: m.currency, Right: other.currency}
	}
	return m.amount.Cmp(other.amount), nil
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, &MismatchError{Op: "add", Left: m.currency, Right: other.currency}
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.SameCurrency(other) {
		return Money{}, &MismatchError{Op: "subtract", Left: m.currency, Right: other.currency}
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Multiply returns m scaled by factor, reduced to whole subunits using mode.
func (m Money) Multiply(factor decimal.Decimal, mode RoundingMode) Money {
	return Money{amount: mode.apply(m.amount.Mul(factor)), currency: m.currency}
}

// WithCurrency re-denominates the amount without converting it.
func (m Money) WithCurrency(currency Currency) Money {
	return Money{amount: m.amount, currency: currency}
}

// String renders the raw subunit amount, e.g. "6431 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}
