// Package documents decodes tabular exports of customer billing documents.
//
// The first row must be the header
//
//	Customer,Vat number,Document number,Type,Parent document,Currency,Total
//
// and every following row is validated against a per-column rule before it
// becomes a CustomerDocument. Parsing stops at the first invalid row.
package documents

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"balances/internal/logger"
	"balances/internal/money"
	"balances/pkg/models"
)

const byteOrderMark = "\uFEFF"

// Column positions
const (
	colCustomer = iota
	colVATNumber
	colDocumentNumber
	colType
	colParentDocument
	colCurrency
	colTotal
	columnCount
)

type columnRule struct {
	label    string
	required bool
	pattern  *regexp.Regexp
}

var columns = [columnCount]columnRule{
	colCustomer:       {label: "Customer", required: true},
	colVATNumber:      {label: "Vat number", required: true, pattern: regexp.MustCompile(`^\d+$`)},
	colDocumentNumber: {label: "Document number", required: true, pattern: regexp.MustCompile(`^\d+$`)},
	colType:           {label: "Type", required: true, pattern: regexp.MustCompile(`^[123]$`)},
	colParentDocument: {label: "Parent document", pattern: regexp.MustCompile(`^\d+$`)},
	colCurrency:       {label: "Currency", required: true, pattern: regexp.MustCompile(`^[A-Z]{3}$`)},
	colTotal:          {label: "Total", required: true, pattern: regexp.MustCompile(`^\d+(?:\.\d+)?$`)},
}

// Header returns the expected header labels in column order.
func Header() []string {
	labels := make([]string, columnCount)
	for i, rule := range columns {
		labels[i] = rule.label
	}
	return labels
}

// CustomerDocument is one decoded row.
type CustomerDocument struct {
	CustomerName string
	VATNumber    string
	Number       string
	Type         models.DocumentType
	Total        money.Money
	ParentNumber string // empty when the row names no parent
}

// Parser validates rows and converts totals through a money formatter.
type Parser struct {
	formatter *money.Formatter
	log       zerolog.Logger
}

// NewParser creates a parser.
func NewParser(formatter *money.Formatter) *Parser {
	return &Parser{
		formatter: formatter,
		log:       logger.WithComponent("document-parser"),
	}
}

// Parse reads the header and every row of source. Errors cite the row
// number reported by the source, i.e. the row of the file.
func (p *Parser) Parse(source RowSource) ([]CustomerDocument, error) {
	header, err := source.Next()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	if err := validateHeader(header.Cells); err != nil {
		return nil, err
	}

	var records []CustomerDocument
	for {
		row, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		record, err := p.parseRow(row.Cells, row.Number)
		if err != nil {
			p.log.Debug().Err(err).Int("row", row.Number).Msg("Rejected document row")
			return nil, err
		}
		records = append(records, record)
	}

	p.log.Debug().Int("documents", len(records)).Msg("Document rows parsed")

	return records, nil
}

func validateHeader(header []string) error {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], byteOrderMark)
	}

	for i, rule := range columns {
		if i >= len(header) || header[i] != rule.label {
			return &HeaderError{Column: i + 1, Expected: rule.label}
		}
	}
	return nil
}

func (p *Parser) parseRow(fields []string, row int) (CustomerDocument, error) {
	if err := validateRow(fields, row); err != nil {
		return CustomerDocument{}, err
	}

	total, err := p.formatter.MoneyFromString(fields[colTotal], fields[colCurrency])
	if err != nil {
		return CustomerDocument{}, &RowError{Row: row, Err: err}
	}

	docType, err := strconv.Atoi(fields[colType])
	if err != nil || !models.DocumentType(docType).Valid() {
		return CustomerDocument{}, &InvalidFieldError{Column: columns[colType].label, Row: row, Pattern: columns[colType].pattern.String()}
	}

	record := CustomerDocument{
		CustomerName: strings.TrimSpace(fields[colCustomer]),
		VATNumber:    fields[colVATNumber],
		Number:       fields[colDocumentNumber],
		Type:         models.DocumentType(docType),
		Total:        total,
	}
	if parent := field(fields, colParentDocument); strings.TrimSpace(parent) != "" {
		record.ParentNumber = parent
	}

	return record, nil
}

func validateRow(fields []string, row int) error {
	for i, rule := range columns {
		value := field(fields, i)
		if strings.TrimSpace(value) == "" {
			if rule.required {
				return &MissingFieldError{Column: rule.label, Row: row}
			}
			continue
		}

		if rule.pattern != nil && !rule.pattern.MatchString(value) {
			return &InvalidFieldError{Column: rule.label, Row: row, Pattern: rule.pattern.String()}
		}
	}
	return nil
}

func field(fields []string, index int) string {
	if index >= len(fields) {
		return ""
	}
	return fields[index]
}
