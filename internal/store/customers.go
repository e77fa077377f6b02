package store

import "balances/pkg/models"

// Customers is the customer index of one Store, keyed by VAT number.
type Customers struct {
	byVAT map[string]*models.Customer
	order []*models.Customer
}

func newCustomers() *Customers {
	return &Customers{byVAT: map[string]*models.Customer{}}
}

// Get returns the customer with the given VAT number.
func (c *Customers) Get(vat string) (*models.Customer, bool) {
	customer, ok := c.byVAT[vat]
	return customer, ok
}

// GetOrCreate returns the customer with the given VAT number, creating it
// with name on first sight. Later names for the same VAT are ignored.
func (c *Customers) GetOrCreate(vat, name string) (*models.Customer, bool) {
	if customer, ok := c.byVAT[vat]; ok {
		return customer, false
	}
	customer := &models.Customer{VATNumber: vat, Name: name}
	c.byVAT[vat] = customer
	c.order = append(c.order, customer)
	return customer, true
}

// All returns every customer in the order they were first seen.
func (c *Customers) All() []*models.Customer {
	all := make([]*models.Customer, len(c.order))
	copy(all, c.order)
	return all
}

// Len returns the number of customers.
func (c *Customers) Len() int {
	return len(c.order)
}
