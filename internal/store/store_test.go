package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balances/internal/documents"
	"balances/internal/money"
	"balances/pkg/models"
)

func record(name, vat, number string, docType models.DocumentType, parent string) documents.CustomerDocument {
	return documents.CustomerDocument{
		CustomerName: name,
		VATNumber:    vat,
		Number:       number,
		Type:         docType,
		Total:        money.NewFromInt(100, "EUR"),
		ParentNumber: parent,
	}
}

func collect(t *testing.T, s *Store, customer *models.Customer) []Invoice {
	t.Helper()
	var invoices []Invoice
	for invoice, err := range s.Documents.CustomerInvoices(customer) {
		require.NoError(t, err)
		invoices = append(invoices, invoice)
	}
	return invoices
}

func numbers(docs []*models.Document) []string {
	var out []string
	for _, doc := range docs {
		out = append(out, doc.Number)
	}
	return out
}

func TestIngestBuildsGraph(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "123456789", "1000000257", models.Invoice, ""),
		record("Vendor 2", "987654321", "1000000258", models.Invoice, ""),
		record("Vendor 1", "123456789", "1000000260", models.CreditNote, "1000000257"),
		record("Vendor 1", "123456789", "1000000261", models.DebitNote, "1000000257"),
		record("Vendor 1", "123456789", "1000000264", models.Invoice, ""),
	}))

	assert.Equal(t, 2, s.Customers.Len())
	assert.Equal(t, 5, s.Documents.Len())

	vendor1, ok := s.Customers.Get("123456789")
	require.True(t, ok)
	assert.Equal(t, "Vendor 1", vendor1.Name)

	invoices := collect(t, s, vendor1)
	require.Len(t, invoices, 2)
	assert.Equal(t, "1000000257", invoices[0].Number)
	assert.Equal(t, []string{"1000000260"}, numbers(invoices[0].CreditNotes))
	assert.Equal(t, []string{"1000000261"}, numbers(invoices[0].DebitNotes))
	assert.Equal(t, "1000000264", invoices[1].Number)
	assert.Empty(t, invoices[1].CreditNotes)
	assert.Empty(t, invoices[1].DebitNotes)

	credit, ok := s.Documents.Get("1000000260")
	require.True(t, ok)
	assert.Equal(t, "1000000257", credit.ParentNumber())
	assert.Same(t, vendor1, credit.Customer)
}

func TestIngestKeepsFirstCustomerName(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor One Ltd", "1", "11", models.Invoice, ""),
		record("Vendor 2", "2", "12", models.Invoice, ""),
	}))

	all := s.Customers.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Vendor 1", all[0].Name)
	assert.Equal(t, "Vendor 2", all[1].Name)
}

func TestIngestResolvesForwardReferences(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "20", models.CreditNote, "10"),
		record("Vendor 1", "1", "10", models.Invoice, ""),
	}))

	customer, _ := s.Customers.Get("1")
	invoices := collect(t, s, customer)
	require.Len(t, invoices, 1)
	assert.Equal(t, []string{"20"}, numbers(invoices[0].CreditNotes))
}

func TestIngestDuplicateNumbers(t *testing.T) {
	tests := []struct {
		name    string
		records []documents.CustomerDocument
	}{
		{
			name: "invoice first",
			records: []documents.CustomerDocument{
				record("Vendor 1", "1", "10", models.Invoice, ""),
				record("Vendor 2", "2", "10", models.CreditNote, "10"),
			},
		},
		{
			name: "note first",
			records: []documents.CustomerDocument{
				record("Vendor 2", "2", "10", models.CreditNote, "11"),
				record("Vendor 1", "1", "11", models.Invoice, ""),
				record("Vendor 1", "1", "10", models.Invoice, ""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Ingest(tt.records)
			require.ErrorIs(t, err, ErrDuplicateDocumentNumber)
			assert.EqualError(t, err,
				"CSV file contains two or more document with duplicated numbers. Duplicate number: 10")
		})
	}
}

func TestIngestDanglingParent(t *testing.T) {
	err := New().Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor 1", "1", "20", models.CreditNote, "99"),
	})

	require.ErrorIs(t, err, ErrDanglingParentReference)
	assert.EqualError(t, err, "Document number 20 references missing document number 99 as it's parent.")

	var dangling *DanglingParentError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "20", dangling.Number)
	assert.Equal(t, "99", dangling.Parent)
}

func TestCustomerInvoicesRejectsInvoiceChild(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor 1", "1", "11", models.Invoice, "10"),
	}))

	customer, _ := s.Customers.Get("1")

	var errs []error
	for _, err := range s.Documents.CustomerInvoices(customer) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrInvalidDocumentRelation)
}

func TestCustomerInvoicesRejectsNoteUnderNote(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor 1", "1", "11", models.CreditNote, "10"),
		record("Vendor 1", "1", "12", models.DebitNote, "11"),
	}))

	note, _ := s.Documents.Get("11")
	_, err := s.Documents.Notes(note)
	assert.ErrorIs(t, err, ErrInvalidDocumentRelation)

	customer, _ := s.Customers.Get("1")

	var yielded []Invoice
	var errs []error
	for invoice, err := range s.Documents.CustomerInvoices(customer) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		yielded = append(yielded, invoice)
	}

	assert.Empty(t, yielded)
	require.Len(t, errs, 1)

	var relation *RelationError
	require.ErrorAs(t, errs[0], &relation)
	assert.Equal(t, "11", relation.Parent)
	assert.Equal(t, "12", relation.Child)
	assert.EqualError(t, errs[0],
		"Invalid document relations. Only invoices can have credit or debit notes (document 12, parent 11)")
}

func TestCustomerInvoicesRejectsInvoiceUnderNote(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor 1", "1", "11", models.DebitNote, "10"),
		record("Vendor 2", "2", "12", models.Invoice, "11"),
	}))

	// the broken link belongs to another customer and still fails the store
	customer, _ := s.Customers.Get("1")
	for _, err := range s.Documents.CustomerInvoices(customer) {
		require.ErrorIs(t, err, ErrInvalidDocumentRelation)
		return
	}
	t.Fatal("expected a relation error")
}

func TestSetParentIndexesChild(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "20", models.DebitNote, "11"),
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor 1", "1", "11", models.Invoice, ""),
	}))

	note, _ := s.Documents.Get("20")
	assert.Equal(t, "11", note.ParentNumber())

	customer, _ := s.Customers.Get("1")
	invoices := collect(t, s, customer)
	require.Len(t, invoices, 2)
	assert.Empty(t, invoices[0].DebitNotes)
	assert.Equal(t, []string{"20"}, numbers(invoices[1].DebitNotes))
}

func TestCustomerInvoicesStopsEarly(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor 1", "1", "11", models.Invoice, ""),
	}))

	customer, _ := s.Customers.Get("1")
	seen := 0
	for range s.Documents.CustomerInvoices(customer) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestCustomerInvoicesIncludesNotesOfOtherCustomers(t *testing.T) {
	s := New()
	require.NoError(t, s.Ingest([]documents.CustomerDocument{
		record("Vendor 1", "1", "10", models.Invoice, ""),
		record("Vendor 2", "2", "20", models.CreditNote, "10"),
	}))

	vendor1, _ := s.Customers.Get("1")
	vendor2, _ := s.Customers.Get("2")

	invoices := collect(t, s, vendor1)
	require.Len(t, invoices, 1)
	assert.Equal(t, []string{"20"}, numbers(invoices[0].CreditNotes))

	assert.Empty(t, collect(t, s, vendor2))
}
