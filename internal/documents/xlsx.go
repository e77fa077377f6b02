package documents

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads rows from one worksheet of an Excel workbook.
type XLSXSource struct {
	file *excelize.File
	rows *excelize.Rows
	row  int
	done bool
}

// NewXLSXSource opens the workbook in r and iterates sheet, or the first
// sheet when sheet is empty.
func NewXLSXSource(r io.Reader, sheet string) (*XLSXSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrEmptyFile, err)
	}

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, ErrEmptyFile
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	return &XLSXSource{file: f, rows: rows}, nil
}

// Next implements RowSource. Rows without any value are skipped.
func (s *XLSXSource) Next() (Row, error) {
	if s.done {
		return Row{}, io.EOF
	}

	// excelize advances one sheet row per Next, including rows absent from the XML
	for s.rows.Next() {
		s.row++
		columns, err := s.rows.Columns()
		if err != nil {
			return Row{}, fmt.Errorf("failed to read row %d: %w", s.row, err)
		}
		if !isBlank(columns) {
			return Row{Number: s.row, Cells: columns}, nil
		}
	}

	s.done = true
	if err := s.rows.Error(); err != nil {
		return Row{}, err
	}
	return Row{}, io.EOF
}

// Close releases the workbook.
func (s *XLSXSource) Close() error {
	if err := s.rows.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
