package money

import (
	"errors"
	"fmt"
)

// Common monetary value errors
var (
	// ErrInvalidAmount is returned when an amount string is not a signed decimal numeral.
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrUnknownCurrency is returned when a currency code is empty or not present
	// in the currency registry.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrCurrencyMismatch is returned when two values of different currencies are combined.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// AmountError reports an amount string that could not be parsed.
type AmountError struct {
	Amount string
}

// Error implements the error interface.
func (e *AmountError) Error() string {
	return fmt.Sprintf("The amount %q is not a valid monetary amount", e.Amount)
}

// Unwrap returns ErrInvalidAmount.
func (e *AmountError) Unwrap() error {
	return ErrInvalidAmount
}

// CurrencyError reports a currency code rejected by the registry.
type CurrencyError struct {
	Code string
}

// Error implements the error interface.
func (e *CurrencyError) Error() string {
	if e.Code == "" {
		return "Empty currency provided"
	}
	return fmt.Sprintf("Currency code %q is not a valid currency.", e.Code)
}

// Unwrap returns ErrUnknownCurrency.
func (e *CurrencyError) Unwrap() error {
	return ErrUnknownCurrency
}

// MismatchError reports an operation between values of different currencies.
type MismatchError struct {
	Op    string
	Left  Currency
	Right Currency
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("money: cannot %s %s and %s values", e.Op, e.Left, e.Right)
}

// Unwrap returns ErrCurrencyMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}
