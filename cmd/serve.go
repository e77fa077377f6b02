package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"balances/internal/balance"
	"balances/internal/exchange"
	"balances/internal/logger"
	"balances/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the balance calculation over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  POST /api/v1/sumInvoices  multipart form with file, exchangeRates, outputCurrency, customerVat
  GET  /docs                API documentation
  GET  /healthz             liveness probe

Environment variables:
  HTTP_ADDR             - Listen address (default :8080)
  HTTP_REQUEST_TIMEOUT  - Per request timeout (default 30s)
  MAX_UPLOAD_BYTES      - Upload size limit (default 10485760)
  EXCHANGE_ROUNDING     - half-up (default) or down`,
	Example: `  balances serve
  balances serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: HTTP_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")

	cfg, registry, err := loadRegistry()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	if !strings.EqualFold(cfg.LogLevel, "debug") && !strings.EqualFold(cfg.LogLevel, "trace") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(balance.NewService(registry, exchange.WithRounding(cfg.ExchangeRounding)), server.Options{
		Addr:           addr,
		RequestTimeout: cfg.HTTPRequestTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	log.Info().
		Str("addr", addr).
		Dur("request_timeout", cfg.HTTPRequestTimeout).
		Int64("max_upload_bytes", cfg.MaxUploadBytes).
		Msg("Starting balances API")

	return srv.Run(ctx)
}
