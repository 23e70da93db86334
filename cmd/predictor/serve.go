package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/success-predictor/internal/cache"
	"github.com/jonathan/success-predictor/internal/config"
	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/jonathan/success-predictor/internal/metrics"
	"github.com/jonathan/success-predictor/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the prediction, ping, demo and validation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to a YAML config file (default: ./predictor.yaml if present)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(serveConfigPath, servePort, cmd.Flags().Changed("port"))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup := buildServer(ctx, *cfg, logger)
	defer cleanup()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadServeConfig loads the configuration and applies the --port override, validating
// the result again so the flag gets the same checks as the file and environment.
func loadServeConfig(path string, port int, portSet bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !portSet {
		return cfg, nil
	}

	cfg.Server.Port = port
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildServer wires the server's optional collaborators from cfg. An unreachable cache
// is logged and skipped; predictions are still served.
func buildServer(ctx context.Context, cfg config.Config, logger logging.Logger) (*server.Server, func()) {
	deps := server.Deps{Logger: logger}
	cleanup := func() {}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Metrics = metrics.New(reg)
		deps.Gatherer = reg
	}

	if cfg.Cache.Enabled {
		c, err := cache.Open(ctx, cfg.Cache)
		if err != nil {
			logger.WithError(err).Warn("prediction cache unavailable, continuing without it", logging.Fields{
				"address": cfg.Cache.Address,
			})
		} else {
			logger.Info("prediction cache connected", logging.Fields{"address": cfg.Cache.Address, "ttl": cfg.Cache.TTL.String()})
			deps.Cache = c
			cleanup = func() { _ = c.Close() }
		}
	}

	return server.New(cfg, deps), cleanup
}
