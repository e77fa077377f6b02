package store

import (
	"iter"

	"balances/pkg/models"
)

// Invoice is an invoice together with the notes that currently reference it.
type Invoice struct {
	*models.Document
	CreditNotes []*models.Document
	DebitNotes  []*models.Document
}

// Documents is the document index of one Store, keyed by document number.
// Children are tracked in a parent -> children index so an invoice's notes
// are always derived from the current parent links.
type Documents struct {
	byNumber map[string]*models.Document
	order    []*models.Document
	children map[*models.Document][]*models.Document
}

func newDocuments() *Documents {
	return &Documents{
		byNumber: map[string]*models.Document{},
		children: map[*models.Document][]*models.Document{},
	}
}

// Get returns the document with the given number.
func (d *Documents) Get(number string) (*models.Document, bool) {
	doc, ok := d.byNumber[number]
	return doc, ok
}

// Add stores doc. It fails with a *DuplicateNumberError if the number is taken.
func (d *Documents) Add(doc *models.Document) error {
	if _, ok := d.byNumber[doc.Number]; ok {
		return &DuplicateNumberError{Number: doc.Number}
	}
	d.byNumber[doc.Number] = doc
	d.order = append(d.order, doc)
	if doc.Parent != nil {
		d.children[doc.Parent] = append(d.children[doc.Parent], doc)
	}
	return nil
}

// SetParent links doc to parent.
func (d *Documents) SetParent(doc, parent *models.Document) {
	doc.Parent = parent
	d.children[parent] = append(d.children[parent], doc)
}

// checkRelations fails on the first document, in insertion order, that is
// linked to a non-invoice or that is linked without being a note.
func (d *Documents) checkRelations() error {
	for _, doc := range d.order {
		if doc.Parent == nil {
			continue
		}
		if doc.Parent.Type != models.Invoice {
			return &RelationError{
				Parent: doc.Parent.Number,
				Child:  doc.Number,
				Reason: "Only invoices can have credit or debit notes",
			}
		}
		if !doc.Type.IsNote() {
			return &RelationError{
				Parent: doc.Parent.Number,
				Child:  doc.Number,
				Reason: "Only credit or debit notes can be attached to invoices",
			}
		}
	}
	return nil
}

// Notes splits the children of invoice into credit and debit notes. Only an
// invoice may have children, and only notes may be its children.
func (d *Documents) Notes(invoice *models.Document) (Invoice, error) {
	view := Invoice{Document: invoice}

	children := d.children[invoice]
	if len(children) > 0 && invoice.Type != models.Invoice {
		return Invoice{}, &RelationError{
			Parent: invoice.Number,
			Child:  children[0].Number,
			Reason: "Only invoices can have credit or debit notes",
		}
	}

	for _, child := range children {
		if !child.Type.IsNote() {
			return Invoice{}, &RelationError{
				Parent: invoice.Number,
				Child:  child.Number,
				Reason: "Only credit or debit notes can be attached to invoices",
			}
		}
		if child.Type == models.CreditNote {
			view.CreditNotes = append(view.CreditNotes, child)
		} else {
			view.DebitNotes = append(view.DebitNotes, child)
		}
	}

	return view, nil
}

// CustomerInvoices yields the invoices of customer in insertion order, each
// with its notes derived at the time it is yielded. Every parent link in the
// store is checked before the first invoice is yielded; iteration stops after
// the first relation error.
func (d *Documents) CustomerInvoices(customer *models.Customer) iter.Seq2[Invoice, error] {
	return func(yield func(Invoice, error) bool) {
		if err := d.checkRelations(); err != nil {
			yield(Invoice{}, err)
			return
		}

		for _, doc := range d.order {
			if doc.Customer != customer || doc.Type != models.Invoice {
				continue
			}

			view, err := d.Notes(doc)
			if err != nil {
				yield(Invoice{}, err)
				return
			}
			if !yield(view, nil) {
				return
			}
		}
	}
}

// Len returns the number of documents.
func (d *Documents) Len() int {
	return len(d.order)
}
