package money

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

// Formatter converts between human decimal strings and Money using a Registry.
type Formatter struct {
	registry Registry
}

// NewFormatter creates a formatter backed by registry.
func NewFormatter(registry Registry) *Formatter {
	return &Formatter{registry: registry}
}

// CurrencyFromCode validates code against the registry.
func (f *Formatter) CurrencyFromCode(code string) (Currency, error) {
	if code == "" {
		return "", &CurrencyError{}
	}

	c := Currency(code)
	if !f.registry.Contains(c) {
		return "", &CurrencyError{Code: code}
	}

	return c, nil
}

// Subunits returns the fractional digits of c.
func (f *Formatter) Subunits(c Currency) int {
	return f.registry.SubunitFor(c)
}

// MoneyFromString parses a decimal amount such as "400.50" in the given currency.
// Digits beyond the currency's subunit precision are truncated, never rounded:
// "64.3123" USD becomes 6431 cents.
func (f *Formatter) MoneyFromString(amount string, code string) (Money, error) {
	c, err := f.CurrencyFromCode(code)
	if err != nil {
		return Money{}, err
	}

	if !amountPattern.MatchString(amount) {
		return Money{}, &AmountError{Amount: amount}
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, &AmountError{Amount: amount}
	}

	return New(value.Shift(int32(f.Subunits(c))), c), nil
}

// Format renders m with exactly as many fractional digits as its currency has
// subunit digits, e.g. "2021.69" for USD or "2133" for JPY.
func (f *Formatter) Format(m Money) string {
	subunits := int32(f.Subunits(m.Currency()))
	return m.Amount().Shift(-subunits).StringFixed(subunits)
}
