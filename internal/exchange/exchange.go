package exchange

import (
	"github.com/shopspring/decimal"

	"balances/internal/money"
)

// Scale is the number of fractional digits kept for the cross rate.
// Digits past it are truncated.
const Scale = 14

// Exchanger converts Money between currencies using a RateProvider.
type Exchanger struct {
	rates    RateProvider
	registry money.Registry
	rounding money.RoundingMode
}

// Option configures an Exchanger.
type Option func(*Exchanger)

// WithRounding sets how converted amounts are reduced to whole subunits.
// The default is money.RoundHalfUp.
func WithRounding(mode money.RoundingMode) Option {
	return func(e *Exchanger) {
		e.rounding = mode
	}
}

// NewExchanger creates an exchanger reading rates from rates and subunit
// precision from registry.
func NewExchanger(rates RateProvider, registry money.Registry, opts ...Option) *Exchanger {
	e := &Exchanger{
		rates:    rates,
		registry: registry,
		rounding: money.RoundHalfUp,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Exchange converts value into target. A value already in target is returned
// unchanged.
func (e *Exchanger) Exchange(value money.Money, target money.Currency) (money.Money, error) {
	if value.Currency() == target {
		return value, nil
	}

	rate, err := e.Rate(value.Currency(), target)
	if err != nil {
		return money.Money{}, err
	}

	// Subunit amounts are rescaled when the currencies differ in precision.
	shift := int32(e.registry.SubunitFor(target) - e.registry.SubunitFor(value.Currency()))

	return value.Multiply(rate.Shift(shift), e.rounding).WithCurrency(target), nil
}

// Rate returns how many units of to one unit of from buys, truncated to Scale digits.
func (e *Exchanger) Rate(from, to money.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	base, err := e.rates.BaseCurrency()
	if err != nil {
		return decimal.Decimal{}, err
	}

	multiplier := decimal.NewFromInt(1)
	if to != base {
		if multiplier, err = e.rates.Rate(to); err != nil {
			return decimal.Decimal{}, err
		}
	}

	divisor := decimal.NewFromInt(1)
	if from != base {
		if divisor, err = e.rates.Rate(from); err != nil {
			return decimal.Decimal{}, err
		}
	}

	if divisor.IsZero() {
		return decimal.Decimal{}, &InvalidRateError{Currency: from}
	}

	rate, _ := multiplier.QuoRem(divisor, Scale)
	return rate, nil
}
