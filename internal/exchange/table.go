// Package exchange converts monetary values between currencies using a
// caller supplied rate table.
//
// Every rate is quoted against a single base currency: a rate R for currency X
// means one unit of the base buys R units of X. Conversions between two
// non-base currencies triangulate through the base by dividing the source
// rate out and multiplying the target rate in.
//
// A RateTable is built fresh for every calculation and is read-only once
// loaded, so it is not safe to share between concurrent requests while loading.
package exchange

import (
	"github.com/shopspring/decimal"

	"balances/internal/money"
)

// RateProvider is the read side of a rate table.
type RateProvider interface {
	BaseCurrency() (money.Currency, error)
	Rate(c money.Currency) (decimal.Decimal, error)
}

// RateTable holds one base currency and the rates of other currencies against it.
type RateTable struct {
	base    money.Currency
	hasBase bool
	rates   map[money.Currency]decimal.Decimal
}

// NewRateTable returns an empty table.
func NewRateTable() *RateTable {
	return &RateTable{rates: map[money.Currency]decimal.Decimal{}}
}

// SetBaseCurrency marks c as the base currency. A rate previously recorded
// for c is dropped, the base never carries one.
func (t *RateTable) SetBaseCurrency(c money.Currency) *RateTable {
	t.base = c
	t.hasBase = true
	delete(t.rates, c)
	return t
}

// SetRate records the rate of c against the base. Later calls for the same
// currency overwrite earlier ones. Rates for the base itself are not stored.
func (t *RateTable) SetRate(c money.Currency, rate decimal.Decimal) *RateTable {
	if t.hasBase && c == t.base {
		return t
	}
	t.rates[c] = rate
	return t
}

// BaseCurrency returns the base currency or ErrMissingBaseCurrency.
func (t *RateTable) BaseCurrency() (money.Currency, error) {
	if !t.hasBase {
		return "", ErrMissingBaseCurrency
	}
	return t.base, nil
}

// Rate returns the rate of c or a *MissingRateError.
func (t *RateTable) Rate(c money.Currency) (decimal.Decimal, error) {
	rate, ok := t.rates[c]
	if !ok {
		return decimal.Decimal{}, &MissingRateError{Currency: c}
	}
	return rate, nil
}

// Len returns the number of non-base rates.
func (t *RateTable) Len() int {
	return len(t.rates)
}
