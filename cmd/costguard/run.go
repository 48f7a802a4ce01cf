package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/voxlane/costguard/pkg/cli"
	"github.com/voxlane/costguard/pkg/config"
	"github.com/voxlane/costguard/pkg/spend"
)

var runFlags struct {
	metricsAddress string
	logLevel       string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the costguard agent",
	Long: `Run the costguard agent: serve the Prometheus metrics endpoint, run
periodic maintenance, and reload the configuration file on change so
daily-limit edits apply without a restart.

Examples:
  # Run with default config
  costguard run

  # Run with custom config
  costguard run --config /etc/costguard/config.yaml

  # Override metrics listen address
  costguard run --metrics-listen 0.0.0.0:9464`,
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.metricsAddress, "metrics-listen", "", "override metrics listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.metricsAddress != "" {
		cfg.Telemetry.Metrics.ListenAddress = runFlags.metricsAddress
		cfg.Telemetry.Metrics.Enabled = true
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	ctx := cli.SetupSignalHandler()

	registry := prometheus.NewRegistry()
	metrics := spend.NewMetrics(registry)

	manager, err := openManager(ctx, cfg, metrics)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer manager.Close()

	// openManager installed the configured handler as the default.
	logger := slog.Default().With("component", "agent")
	logger.Info("costguard agent starting",
		"daily_limit", cfg.Budget.DailyLimit,
		"storage_backend", cfg.Storage.Backend,
		"journal_enabled", cfg.Journal.Enabled,
	)

	if err := manager.StartMaintenance(); err != nil {
		return cli.NewCommandError("run", err)
	}

	// Reload configuration on file change. Only the daily limit is
	// applied live; storage and journal changes need a restart.
	watcher, err := config.NewWatcher(config.WatcherConfig{
		Path:   cfgFile,
		Logger: slog.Default().With("component", "config.watcher"),
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	go func() {
		err := watcher.Watch(ctx, func(next *config.Config) {
			if next.Budget.DailyLimit != manager.DailyLimit() {
				if err := manager.SetDailyLimit(next.Budget.DailyLimit); err != nil {
					logger.Error("failed to apply reloaded daily limit", "error", err)
				}
			}
		})
		if err != nil {
			logger.Error("config watcher stopped", "error", err)
		}
	}()
	defer watcher.Stop()

	// Metrics endpoint
	var metricsServer *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              cfg.Telemetry.Metrics.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics endpoint listening", "address", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	return nil
}
