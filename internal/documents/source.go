package documents

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Row is one non-blank table row. Number is the 1-based row (or line) of the
// underlying file, so skipped blank rows still count.
type Row struct {
	Number int
	Cells  []string
}

// RowSource yields table rows one at a time. Next returns io.EOF once the
// rows are exhausted.
type RowSource interface {
	Next() (Row, error)
}

// CSVSource reads comma separated rows.
type CSVSource struct {
	reader *csv.Reader
}

// NewCSVSource returns a source reading r. Rows may carry any number of fields;
// blank lines are skipped.
func NewCSVSource(r io.Reader) *CSVSource {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return &CSVSource{reader: reader}
}

// Next implements RowSource.
func (s *CSVSource) Next() (Row, error) {
	record, err := s.reader.Read()
	if err == io.EOF {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, fmt.Errorf("%w (%v)", ErrEmptyFile, err)
	}
	line, _ := s.reader.FieldPos(0)
	return Row{Number: line, Cells: record}, nil
}

// SliceSource serves rows already held in memory, such as a spreadsheet range.
type SliceSource struct {
	rows  [][]string
	pos   int
	first int
}

// NewSliceSource returns a source over rows, numbering rows[0] as row 1.
func NewSliceSource(rows [][]string) *SliceSource {
	return NewSliceSourceAt(rows, 1)
}

// NewSliceSourceAt returns a source over rows that starts at row first of
// the underlying sheet.
func NewSliceSourceAt(rows [][]string, first int) *SliceSource {
	return &SliceSource{rows: rows, first: first}
}

// Next implements RowSource.
func (s *SliceSource) Next() (Row, error) {
	for s.pos < len(s.rows) {
		cells := s.rows[s.pos]
		s.pos++
		if !isBlank(cells) {
			return Row{Number: s.first + s.pos - 1, Cells: cells}, nil
		}
	}
	return Row{}, io.EOF
}

// SourceForFile picks a row source from the file name extension. CSV is
// assumed when the name has no extension.
func SourceForFile(name string, r io.Reader) (RowSource, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case "", ".csv", ".txt":
		return NewCSVSource(r), nil
	case ".xlsx", ".xlsm":
		return NewXLSXSource(r, "")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
