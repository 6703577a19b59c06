package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agbru/apint/internal/logging"
	"github.com/agbru/apint/internal/server"
)

// serveCmd runs the HTTP interface.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve arithmetic operations over HTTP",
	Long: `Run an HTTP server exposing the arithmetic engine. Endpoints:

    /v1/eval      evaluate a binary operation (op, x, y, radix query params)
    /v1/modpow    modular exponentiation (base, exp, mod, radix)
    /healthz      liveness check
    /metrics      Prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
    apcalc serve --metrics-addr :8080
    curl 'localhost:8080/v1/eval?op=mul&x=123456789&y=987654321'`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "listen address for the HTTP server")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:         cfg.MetricsAddr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Timeout,
		Security:     server.DefaultSecurityConfig(),
	}, logger)

	logger.Info("starting HTTP server", logging.String("addr", cfg.MetricsAddr))
	return srv.ListenAndServe(ctx)
}
