package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"balances/internal/documents"
	"balances/internal/logger"
	"balances/pkg/services"
)

var (
	spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	rangeStartPattern    = regexp.MustCompile(`^(?:.*!)?\$?[A-Za-z]*\$?(\d+)`)
)

// Service handles Google Sheets operations
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

// NewSheetsService creates a new Google Sheets service using the service
// account credentials named by GOOGLE_APPLICATION_CREDENTIALS or held in
// GOOGLE_CREDENTIALS
func NewSheetsService(ctx context.Context, sheetURL string) (*Service, error) {
	const op = "NewSheetsService"

	var creds []byte
	var err error
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
	} else if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		creds = []byte(credsJSON)
	} else {
		return nil, fmt.Errorf("%s: neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set", op)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	return NewSheetsServiceWithOptions(ctx, sheetURL, option.WithHTTPClient(config.Client(ctx)))
}

// NewSheetsServiceWithOptions creates a service with explicit client options,
// e.g. a custom endpoint
func NewSheetsServiceWithOptions(ctx context.Context, sheetURL string, opts ...option.ClientOption) (*Service, error) {
	const op = "NewSheetsService"

	log := logger.WithComponent("sheets")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to extract spreadsheet ID: %w", op, err)
	}

	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Extracted spreadsheet ID")

	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

// extractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func extractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}
	return matches[1], nil
}

// ReadRange reads values from a specified range in the spreadsheet
func (s *Service) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	resp, err := s.readValueRange(ctx, rangeSpec)
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s *Service) readValueRange(ctx context.Context, rangeSpec string) (*sheets.ValueRange, error) {
	const op = "ReadRange"

	s.log.Debug().
		Str("range", rangeSpec).
		Msg("Reading range from spreadsheet")

	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read range %s: %w", op, rangeSpec, err)
	}

	s.log.Debug().
		Int("rows", len(resp.Values)).
		Str("range", rangeSpec).
		Msg("Successfully read range from spreadsheet")

	return resp, nil
}

// DocumentRows reads a document export from rangeSpec, e.g. "Documents!A:G",
// and serves it as a row source. The first row must be the header.
func (s *Service) DocumentRows(ctx context.Context, rangeSpec string) (documents.RowSource, error) {
	resp, err := s.readValueRange(ctx, rangeSpec)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j := range row {
			cells[j] = getString(row, j)
		}
		rows[i] = cells
	}

	return documents.NewSliceSourceAt(rows, firstRow(resp.Range)), nil
}

// firstRow returns the sheet row a returned A1 range such as "Documents!A3:G9"
// starts at
func firstRow(a1Range string) int {
	matches := rangeStartPattern.FindStringSubmatch(a1Range)
	if len(matches) < 2 {
		return 1
	}
	row, err := strconv.Atoi(matches[1])
	if err != nil || row < 1 {
		return 1
	}
	return row
}

// WriteBalances replaces the contents of sheetName with the balances in
// result, creating the sheet when it does not exist
func (s *Service) WriteBalances(ctx context.Context, sheetName string, result *services.SumInvoicesResult) error {
	const op = "WriteBalances"

	s.log.Info().
		Str("sheet", sheetName).
		Int("rows", len(result.Customers)).
		Msg("Writing balances to Google Sheet")

	if err := s.ensureSheet(ctx, sheetName); err != nil {
		return fmt.Errorf("%s: failed to ensure sheet exists: %w", op, err)
	}

	target := sheetName + "!A:C"
	_, err := s.sheetsService.Spreadsheets.Values.Clear(s.spreadsheetID, target, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to clear %s: %w", op, target, err)
	}

	values := [][]interface{}{{"Customer", "Balance", "Currency"}}
	for _, entry := range result.Customers {
		values = append(values, []interface{}{entry.Name, entry.Balance, result.Currency})
	}

	_, err = s.sheetsService.Spreadsheets.Values.Update(
		s.spreadsheetID,
		sheetName+"!A1",
		&sheets.ValueRange{Values: values},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to write balances: %w", op, err)
	}

	return nil
}

// ensureSheet creates sheetName when the spreadsheet has no sheet with that title
func (s *Service) ensureSheet(ctx context.Context, sheetName string) error {
	const op = "ensureSheet"

	spreadsheet, err := s.sheetsService.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get spreadsheet: %w", op, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return nil
		}
	}

	s.log.Info().Str("sheet", sheetName).Msg("Creating new sheet")

	batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: sheetName}}},
		},
	}
	if _, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: failed to create sheet: %w", op, err)
	}

	return nil
}

func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	// JSON numbers arrive as float64; %v would switch to exponent notation
	if f, ok := row[index].(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
}
