// Package balance computes per-customer balances from a document graph and
// orchestrates a complete sum-invoices request.
package balance

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"balances/internal/documents"
	"balances/internal/exchange"
	"balances/internal/logger"
	"balances/internal/money"
	"balances/internal/store"
	"balances/pkg/models"
	"balances/pkg/services"
)

var vatFilterPattern = regexp.MustCompile(`^\d+$`)

// Service implements services.BalanceService. It holds only read-only
// collaborators; every call builds its own rate table and store.
type Service struct {
	registry     money.Registry
	formatter    *money.Formatter
	parser       *documents.Parser
	rateLoader   *exchange.RateLoader
	exchangeOpts []exchange.Option
	log          zerolog.Logger
}

var _ services.BalanceService = (*Service)(nil)

// NewService creates a service resolving currencies through registry.
func NewService(registry money.Registry, opts ...exchange.Option) *Service {
	formatter := money.NewFormatter(registry)
	return &Service{
		registry:     registry,
		formatter:    formatter,
		parser:       documents.NewParser(formatter),
		rateLoader:   exchange.NewRateLoader(formatter),
		exchangeOpts: opts,
		log:          logger.WithComponent("balance-service"),
	}
}

// SumInvoices loads rates, then documents, then resolves the output currency
// and the customer filter, and finally calculates each balance. Input errors
// are returned unwrapped so their messages can be shown to the caller as is.
func (s *Service) SumInvoices(ctx context.Context, req services.SumInvoicesRequest) (*services.SumInvoicesResult, error) {
	const op = "SumInvoices"
	start := time.Now()

	if req.ExchangeRates == "" {
		return nil, ErrMissingExchangeRates
	}
	rates := exchange.NewRateTable()
	if err := s.rateLoader.Load(rates, req.ExchangeRates); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.Rows == nil {
		return nil, ErrMissingDocuments
	}
	records, err := s.parser.Parse(req.Rows)
	if err != nil {
		return nil, err
	}

	st := store.New()
	if err := st.Ingest(records); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.OutputCurrency == "" {
		return nil, ErrMissingOutputCurrency
	}
	currency, err := s.formatter.CurrencyFromCode(req.OutputCurrency)
	if err != nil {
		return nil, err
	}

	customers, err := selectCustomers(st.Customers, req.CustomerVAT)
	if err != nil {
		return nil, err
	}

	calculator := NewCalculator(st.Documents, exchange.NewExchanger(rates, s.registry, s.exchangeOpts...))

	result := &services.SumInvoicesResult{
		Currency:  currency.Code(),
		Customers: make([]services.CustomerBalanceEntry, 0, len(customers)),
	}
	for _, customer := range customers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		balance, err := calculator.Calculate(customer, currency)
		if err != nil {
			return nil, err
		}

		result.Customers = append(result.Customers, services.CustomerBalanceEntry{
			Name:    balance.Customer.Name,
			Balance: s.formatter.Format(balance.Balance),
		})
	}

	s.log.Info().
		Int("documents", st.Documents.Len()).
		Int("customers", len(result.Customers)).
		Str("currency", result.Currency).
		Dur("duration", time.Since(start)).
		Msg("Balances calculated")

	return result, nil
}

// selectCustomers applies the VAT filter. A filter that is not a digit
// string is ignored and every customer is returned.
func selectCustomers(customers *store.Customers, vat string) ([]*models.Customer, error) {
	if !vatFilterPattern.MatchString(vat) {
		return customers.All(), nil
	}

	customer, ok := customers.Get(vat)
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return []*models.Customer{customer}, nil
}
