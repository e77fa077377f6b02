package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"balances/internal/config"
	"balances/internal/logger"
	"balances/internal/money"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "balances",
	Short: "Balances - sum customer invoices, credit notes and debit notes",
	Long: `Balances reads an export of customer billing documents, converts every
document total into one reporting currency using the exchange rates you
provide, and reports the resulting balance per customer.

Documents can be read from CSV or Excel files or from a Google Sheet, and
the same calculation is available over HTTP with the serve command.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("Balances CLI executed")

		cmd.Help()
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// loadRegistry loads the configuration and the currency registry it names
func loadRegistry() (*config.Config, *money.ISORegistry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	registry, err := money.LoadISORegistry(cfg.CurrencyOverridesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load currency overrides: %w", err)
	}

	return cfg, registry, nil
}
