// Package store keeps the customers and documents of a single request in
// memory and links notes to the invoices they adjust.
//
// A Store is built per request by New and Ingest and is discarded afterwards.
// It is not safe for concurrent use.
package store

import (
	"github.com/rs/zerolog"

	"balances/internal/documents"
	"balances/internal/logger"
	"balances/pkg/models"
)

// Store owns every customer and document of one request.
type Store struct {
	Customers *Customers
	Documents *Documents
	log       zerolog.Logger
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Customers: newCustomers(),
		Documents: newDocuments(),
		log:       logger.WithComponent("store"),
	}
}

type parentLink struct {
	child  *models.Document
	parent string
}

// Ingest adds records in order and then links every document naming a
// parent. Parents may appear after their children in records.
func (s *Store) Ingest(records []documents.CustomerDocument) error {
	var links []parentLink

	for _, record := range records {
		customer, created := s.Customers.GetOrCreate(record.VATNumber, record.CustomerName)
		if !created && customer.Name != record.CustomerName {
			s.log.Debug().
				Str("vat", record.VATNumber).
				Str("kept", customer.Name).
				Str("ignored", record.CustomerName).
				Msg("Customer name differs from first occurrence")
		}

		doc := &models.Document{
			Number:   record.Number,
			Type:     record.Type,
			Total:    record.Total,
			Customer: customer,
		}
		if err := s.Documents.Add(doc); err != nil {
			return err
		}

		if record.ParentNumber != "" {
			links = append(links, parentLink{child: doc, parent: record.ParentNumber})
		}
	}

	for _, link := range links {
		parent, ok := s.Documents.Get(link.parent)
		if !ok {
			return &DanglingParentError{Number: link.child.Number, Parent: link.parent}
		}
		s.Documents.SetParent(link.child, parent)
	}

	s.log.Debug().
		Int("customers", s.Customers.Len()).
		Int("documents", s.Documents.Len()).
		Int("links", len(links)).
		Msg("Documents ingested")

	return nil
}
