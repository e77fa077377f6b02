package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"balances/internal/balance"
	"balances/internal/documents"
	"balances/internal/exchange"
	"balances/internal/logger"
	"balances/internal/sheets"
	"balances/pkg/services"
)

var sumCmd = &cobra.Command{
	Use:   "sum [documents-file]",
	Short: "Calculate customer balances from a document export",
	Long: `Calculate the balance of every customer in a document export.

The export must start with the header
  Customer,Vat number,Document number,Type,Parent document,Currency,Total

Type is 1 for an invoice, 2 for a credit note and 3 for a debit note. Notes
name the invoice they adjust in "Parent document". Every total is converted
into the output currency through the base currency of --rates, the one entry
whose rate is 1.

Documents are read from a .csv or .xlsx file, from a Google Sheet when
--sheet-url (or GOOGLE_SHEET_URL) is set, or as CSV from stdin.

Environment variables for Google Sheets:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # Balances of all customers in USD
  balances sum documents.csv --rates EUR:1,USD:0.987,GBP:0.878 --output-currency USD

  # A single customer, written to a file
  balances sum documents.xlsx --rates EUR:1,USD:0.987 --output-currency EUR --customer-vat 123456789 -o balance.json

  # Read documents from a Google Sheet and write balances back to it
  balances sum --sheet-url https://docs.google.com/spreadsheets/d/<id> --sheet-range 'Documents!A:G' \
    --rates EUR:1,USD:0.987 --output-currency EUR --write-sheet Balances`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSum,
}

func init() {
	rootCmd.AddCommand(sumCmd)

	sumCmd.Flags().String("rates", "", "Exchange rates, e.g. EUR:1,USD:0.987,GBP:0.878 (exactly one rate of 1)")
	sumCmd.Flags().String("output-currency", "", "ISO 4217 code balances are reported in")
	sumCmd.Flags().String("customer-vat", "", "Only report the customer with this VAT number")
	sumCmd.Flags().String("sheet-url", "", "Google Sheet to read documents from (default: GOOGLE_SHEET_URL)")
	sumCmd.Flags().String("sheet-range", "", "Range holding the documents (default: GOOGLE_SHEET_RANGE or Documents!A:G)")
	sumCmd.Flags().String("write-sheet", "", "Also write the balances to this sheet of the Google Sheet")
	sumCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	sumCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
}

func runSum(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("sum")

	rates, _ := cmd.Flags().GetString("rates")
	outputCurrency, _ := cmd.Flags().GetString("output-currency")
	customerVAT, _ := cmd.Flags().GetString("customer-vat")
	sheetURL, _ := cmd.Flags().GetString("sheet-url")
	sheetRange, _ := cmd.Flags().GetString("sheet-range")
	writeSheet, _ := cmd.Flags().GetString("write-sheet")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, registry, err := loadRegistry()
	if err != nil {
		return err
	}
	if sheetURL == "" && len(args) == 0 {
		sheetURL = cfg.GoogleSheetURL
	}
	if sheetRange == "" {
		sheetRange = cfg.GoogleSheetRange
	}

	ctx, cancel := createSumContext(timeoutSecs, log)
	defer cancel()

	var sheetsService *sheets.Service
	if sheetURL != "" {
		sheetsService, err = sheets.NewSheetsService(ctx, sheetURL)
		if err != nil {
			return fmt.Errorf("failed to connect to Google Sheets: %w", err)
		}
	}

	rows, closeRows, err := openDocumentRows(ctx, args, sheetsService, sheetRange, cmd.InOrStdin(), log)
	if err != nil {
		return err
	}
	defer closeRows()

	startTime := time.Now()

	result, err := balance.NewService(registry, exchange.WithRounding(cfg.ExchangeRounding)).SumInvoices(ctx, services.SumInvoicesRequest{
		Rows:           rows,
		ExchangeRates:  rates,
		OutputCurrency: outputCurrency,
		CustomerVAT:    customerVAT,
	})
	if err != nil {
		return handleSumError(err, log)
	}

	log.Info().
		Int("customers", len(result.Customers)).
		Str("currency", result.Currency).
		Dur("duration", time.Since(startTime)).
		Msg("Balances calculated successfully")

	if writeSheet != "" {
		if sheetsService == nil {
			return fmt.Errorf("--write-sheet requires --sheet-url or GOOGLE_SHEET_URL")
		}
		if err := sheetsService.WriteBalances(ctx, writeSheet, result); err != nil {
			return fmt.Errorf("failed to write balances to Google Sheet: %w", err)
		}
	}

	return outputSumResults(cmd.OutOrStdout(), result, outputPath, log)
}

// openDocumentRows picks the document source: a file argument, a Google
// Sheet range, or CSV on stdin
func openDocumentRows(ctx context.Context, args []string, sheetsService *sheets.Service, sheetRange string,
	stdin io.Reader, log zerolog.Logger) (documents.RowSource, func(), error) {
	noop := func() {}

	if len(args) == 0 && sheetsService != nil {
		log.Info().Str("range", sheetRange).Msg("Reading documents from Google Sheet")
		rows, err := sheetsService.DocumentRows(ctx, sheetRange)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to read documents from Google Sheet: %w", err)
		}
		return rows, noop, nil
	}

	if len(args) == 0 || args[0] == "-" {
		log.Info().Msg("Reading CSV documents from stdin")
		return documents.NewCSVSource(stdin), noop, nil
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, noop, fmt.Errorf("documents file not found: %s", path)
		}
		return nil, noop, fmt.Errorf("failed to open documents file: %w", err)
	}

	rows, err := documents.SourceForFile(path, file)
	if err != nil {
		file.Close()
		return nil, noop, err
	}

	log.Info().Str("file", path).Msg("Reading documents from file")

	return rows, func() {
		if closer, ok := rows.(io.Closer); ok {
			if closeErr := closer.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("Failed to close workbook")
			}
		}
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close documents file")
		}
	}, nil
}

// createSumContext creates a context with timeout and signal handling
func createSumContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling balance calculation")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleSumError provides user-friendly error messages for calculation failures
func handleSumError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Balance calculation failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("balance calculation timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("balance calculation was canceled")
	case errors.Is(err, balance.ErrMissingExchangeRates):
		return fmt.Errorf("missing exchange rates. Pass them with --rates, e.g. --rates EUR:1,USD:0.987")
	case errors.Is(err, balance.ErrMissingOutputCurrency):
		return fmt.Errorf("missing output currency. Pass it with --output-currency, e.g. --output-currency USD")
	case balance.IsNotFound(err):
		return fmt.Errorf("no customer with VAT number matching --customer-vat: %w", err)
	case balance.IsClientError(err):
		return fmt.Errorf("invalid input: %w", err)
	default:
		return fmt.Errorf("balance calculation failed: %w", err)
	}
}

// outputSumResults writes the result as indented JSON to outputPath or stdout
func outputSumResults(stdout io.Writer, result *services.SumInvoicesResult, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal balances to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Balances written to file")
		return nil
	}

	_, err = fmt.Fprintln(stdout, string(jsonData))
	return err
}
