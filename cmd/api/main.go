// Package main is the entrypoint for the treedoc API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/tweesky/treedoc/internal/apidoc"
	"github.com/tweesky/treedoc/internal/config"
	"github.com/tweesky/treedoc/internal/handler"
	"github.com/tweesky/treedoc/internal/metrics"
	"github.com/tweesky/treedoc/internal/server"
)

// version can be set during build with -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "treedoc-api",
		Short:         "Sample Tree API documented with OpenAPI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newOpenAPICmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe loads configuration from the environment and serves until
// SIGINT or SIGTERM.
func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Build the API description; an invalid document aborts startup
	reg, doc, err := buildDocument(cfg.ServerURL)
	if err != nil {
		logger.Error("failed to build API description", "error", err)
		return err
	}

	var recorder metrics.Recorder = metrics.NewNoop()
	routerCfg := handler.RouterConfig{
		Config:   cfg,
		Registry: reg,
		Document: doc,
		Logger:   logger,
	}
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus()
		recorder = prom
		routerCfg.MetricsHandler = prom.Handler()
	}
	routerCfg.Metrics = recorder

	// Setup router
	r, err := handler.NewRouter(routerCfg)
	if err != nil {
		logger.Error("failed to set up router", "error", err)
		return err
	}

	// Create and run server
	srv := server.New(r, server.Options{
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	logger.Info("starting server",
		"port", cfg.Port,
		"server_url", cfg.ServerURL,
		"env", cfg.AppEnv,
		"operations", reg.Len(),
		"docs_enabled", cfg.DocsEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	return nil
}

// buildDocument assembles the operation registry and its OpenAPI document.
func buildDocument(serverURL string) (apidoc.Registry, *openapi3.T, error) {
	reg, err := handler.NewRegistry()
	if err != nil {
		return apidoc.Registry{}, nil, fmt.Errorf("build registry: %w", err)
	}
	doc, err := apidoc.Build(reg, handler.DocumentInfo(serverURL))
	if err != nil {
		return apidoc.Registry{}, nil, err
	}
	return reg, doc, nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if strings.EqualFold(cfg.LogFormat, "json") {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
