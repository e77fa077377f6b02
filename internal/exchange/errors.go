package exchange

import (
	"errors"
	"fmt"

	"balances/internal/money"
)

// Exchange rate errors
var (
	// ErrMissingBaseCurrency is returned when a conversion needs the base currency
	// but none was loaded.
	ErrMissingBaseCurrency = errors.New("Base currency not provided!")

	// ErrMissingExchangeRate is returned when a conversion needs a rate that was not loaded.
	ErrMissingExchangeRate = errors.New("missing currency exchange rate")

	// ErrInvalidExchangeRate is returned when a loaded rate cannot be divided by (zero).
	ErrInvalidExchangeRate = errors.New("invalid currency exchange rate")

	// ErrMalformedRateEntry is returned when a rate entry is not of the form CCC:NUMBER.
	ErrMalformedRateEntry = errors.New("malformed exchange rate entry")

	// ErrDuplicateBaseCurrency is returned when more than one entry carries the rate 1.
	ErrDuplicateBaseCurrency = errors.New("Cannot provide base currency more than once")
)

// MissingRateError names the currency whose rate is missing.
type MissingRateError struct {
	Currency money.Currency
}

// Error implements the error interface.
func (e *MissingRateError) Error() string {
	return fmt.Sprintf("Missing %s currency exchange rate", e.Currency)
}

// Unwrap returns ErrMissingExchangeRate.
func (e *MissingRateError) Unwrap() error {
	return ErrMissingExchangeRate
}

// InvalidRateError names the currency whose rate cannot be used as a divisor.
type InvalidRateError struct {
	Currency money.Currency
}

// Error implements the error interface.
func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("Exchange rate for %s must be greater than zero", e.Currency)
}

// Unwrap returns ErrInvalidExchangeRate.
func (e *InvalidRateError) Unwrap() error {
	return ErrInvalidExchangeRate
}

// RateEntryError reports a rate entry that does not match CCC:NUMBER.
type RateEntryError struct {
	Entry string
}

// Error implements the error interface.
func (e *RateEntryError) Error() string {
	return fmt.Sprintf("Invalid exchange rate format %q. Example valid format: USD:0.523", e.Entry)
}

// Unwrap returns ErrMalformedRateEntry.
func (e *RateEntryError) Unwrap() error {
	return ErrMalformedRateEntry
}
