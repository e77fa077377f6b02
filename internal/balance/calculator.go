package balance

import (
	"balances/internal/money"
	"balances/internal/store"
	"balances/pkg/models"
)

// Converter converts money into another currency.
type Converter interface {
	Exchange(value money.Money, target money.Currency) (money.Money, error)
}

// Calculator nets a customer's invoices and their notes into one balance.
type Calculator struct {
	documents *store.Documents
	converter Converter
}

// NewCalculator creates a calculator over documents.
func NewCalculator(documents *store.Documents, converter Converter) *Calculator {
	return &Calculator{documents: documents, converter: converter}
}

// Calculate returns the balance of customer in currency. Each invoice
// contributes its total plus its credit notes minus its debit notes, all
// converted into currency first. Notes without a parent invoice are ignored.
func (c *Calculator) Calculate(customer *models.Customer, currency money.Currency) (models.CustomerBalance, error) {
	balance := money.Zero(currency)

	for invoice, err := range c.documents.CustomerInvoices(customer) {
		if err != nil {
			return models.CustomerBalance{}, err
		}

		total, err := c.invoiceTotal(invoice, currency)
		if err != nil {
			return models.CustomerBalance{}, err
		}

		if balance, err = balance.Add(total); err != nil {
			return models.CustomerBalance{}, err
		}
	}

	return models.CustomerBalance{Customer: customer, Balance: balance}, nil
}

func (c *Calculator) invoiceTotal(invoice store.Invoice, currency money.Currency) (money.Money, error) {
	total, err := c.converter.Exchange(invoice.Total, currency)
	if err != nil {
		return money.Money{}, err
	}

	for _, note := range invoice.CreditNotes {
		converted, err := c.converter.Exchange(note.Total, currency)
		if err != nil {
			return money.Money{}, err
		}
		if total, err = total.Add(converted); err != nil {
			return money.Money{}, err
		}
	}

	for _, note := range invoice.DebitNotes {
		converted, err := c.converter.Exchange(note.Total, currency)
		if err != nil {
			return money.Money{}, err
		}
		if total, err = total.Subtract(converted); err != nil {
			return money.Money{}, err
		}
	}

	return total, nil
}
