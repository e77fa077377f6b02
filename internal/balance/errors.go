package balance

import (
	"errors"

	"balances/internal/documents"
	"balances/internal/exchange"
	"balances/internal/money"
	"balances/internal/store"
)

// Request errors
var (
	// ErrMissingExchangeRates is returned when the request carries no exchange rates.
	ErrMissingExchangeRates = errors.New("Expected exchangeRates parameter containing exchange rates")

	// ErrMissingDocuments is returned when the request carries no document rows.
	ErrMissingDocuments = errors.New(`Expected "file" parameter containing documents in CSV format`)

	// ErrMissingOutputCurrency is returned when the request names no output currency.
	ErrMissingOutputCurrency = errors.New("Missing outputCurrency request parameter")

	// ErrCustomerNotFound is returned when the VAT filter matches no customer.
	ErrCustomerNotFound = errors.New("Customer with the specified VAT not found")
)

// clientErrors are caused by the request contents rather than by the service.
var clientErrors = []error{
	ErrMissingExchangeRates,
	ErrMissingDocuments,
	ErrMissingOutputCurrency,
	money.ErrInvalidAmount,
	money.ErrUnknownCurrency,
	money.ErrCurrencyMismatch,
	exchange.ErrMalformedRateEntry,
	exchange.ErrDuplicateBaseCurrency,
	exchange.ErrMissingBaseCurrency,
	exchange.ErrMissingExchangeRate,
	exchange.ErrInvalidExchangeRate,
	documents.ErrEmptyFile,
	documents.ErrMalformedHeader,
	documents.ErrMissingField,
	documents.ErrInvalidFieldValue,
	documents.ErrUnsupportedFormat,
	store.ErrDuplicateDocumentNumber,
	store.ErrDanglingParentReference,
	store.ErrInvalidDocumentRelation,
}

// IsClientError reports whether err was caused by invalid request input.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the requested customer does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound)
}
