package store

import (
	"errors"
	"fmt"
)

// Document graph errors
var (
	// ErrDuplicateDocumentNumber is returned when two documents share a number.
	ErrDuplicateDocumentNumber = errors.New("duplicate document number")

	// ErrDanglingParentReference is returned when a document names a parent that does not exist.
	ErrDanglingParentReference = errors.New("missing parent document")

	// ErrInvalidDocumentRelation is returned when a parent/child pair is not invoice/note.
	ErrInvalidDocumentRelation = errors.New("invalid document relation")
)

// DuplicateNumberError names the repeated document number.
type DuplicateNumberError struct {
	Number string
}

// Error implements the error interface.
func (e *DuplicateNumberError) Error() string {
	return fmt.Sprintf("CSV file contains two or more document with duplicated numbers. Duplicate number: %s", e.Number)
}

// Unwrap returns ErrDuplicateDocumentNumber.
func (e *DuplicateNumberError) Unwrap() error {
	return ErrDuplicateDocumentNumber
}

// DanglingParentError names the child and the parent number it references.
type DanglingParentError struct {
	Number string
	Parent string
}

// Error implements the error interface.
func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("Document number %s references missing document number %s as it's parent.", e.Number, e.Parent)
}

// Unwrap returns ErrDanglingParentReference.
func (e *DanglingParentError) Unwrap() error {
	return ErrDanglingParentReference
}

// RelationError reports a parent/child pair that breaks the invoice/note rules.
type RelationError struct {
	Parent string
	Child  string
	Reason string
}

// Error implements the error interface.
func (e *RelationError) Error() string {
	return fmt.Sprintf("Invalid document relations. %s (document %s, parent %s)", e.Reason, e.Child, e.Parent)
}

// Unwrap returns ErrInvalidDocumentRelation.
func (e *RelationError) Unwrap() error {
	return ErrInvalidDocumentRelation
}
