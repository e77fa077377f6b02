package models

import (
	"fmt"

	"balances/internal/money"
)

// DocumentType identifies the kind of billing document
type DocumentType int

const (
	Invoice    DocumentType = 1 // Standalone charge to a customer
	CreditNote DocumentType = 2 // Adjustment attached to an invoice, increases the balance
	DebitNote  DocumentType = 3 // Adjustment attached to an invoice, decreases the balance
)

// String returns the document type name
func (t DocumentType) String() string {
	switch t {
	case Invoice:
		return "invoice"
	case CreditNote:
		return "credit note"
	case DebitNote:
		return "debit note"
	default:
		return fmt.Sprintf("DocumentType(%d)", int(t))
	}
}

// Valid reports whether t is one of the known document types
func (t DocumentType) Valid() bool {
	return t >= Invoice && t <= DebitNote
}

// IsNote reports whether t is a credit or debit note
func (t DocumentType) IsNote() bool {
	return t == CreditNote || t == DebitNote
}

type Customer struct {
	VATNumber string // Numeric VAT identifier, unique per customer
	Name      string // Display name taken from the first document seen
}

type Document struct {
	Number   string       // Numeric document number, unique across the input
	Type     DocumentType // Invoice, credit note or debit note
	Total    money.Money  // Document total in its own currency
	Customer *Customer    // Owning customer
	Parent   *Document    // Invoice a note adjusts (nil for invoices and orphan notes)
}

// ParentNumber returns the number of the parent document, or "" when there is none
func (d *Document) ParentNumber() string {
	if d.Parent == nil {
		return ""
	}
	return d.Parent.Number
}

// CustomerBalance is the net balance of one customer in the requested currency
type CustomerBalance struct {
	Customer *Customer
	Balance  money.Money
}
