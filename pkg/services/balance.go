package services

import (
	"context"

	"balances/internal/documents"
)

// BalanceService defines the interface for summing customer document balances
type BalanceService interface {
	// SumInvoices loads the rates and documents of one request and returns the
	// balance of every requested customer in the output currency
	SumInvoices(ctx context.Context, req SumInvoicesRequest) (*SumInvoicesResult, error)
}

// SumInvoicesRequest carries the inputs of one balance calculation
type SumInvoicesRequest struct {
	Rows           documents.RowSource // Header plus document rows
	ExchangeRates  string              // e.g. "EUR:1,USD:0.987,GBP:0.878"
	OutputCurrency string              // ISO code balances are reported in
	CustomerVAT    string              // Optional numeric VAT filter
}

// SumInvoicesResult is the balance of every requested customer
type SumInvoicesResult struct {
	Currency  string                 `json:"currency"`
	Customers []CustomerBalanceEntry `json:"customers"`
}

// CustomerBalanceEntry is one customer's formatted balance
type CustomerBalanceEntry struct {
	Name    string `json:"name"`
	Balance string `json:"balance"` // Decimal string with the currency's subunit digits
}
