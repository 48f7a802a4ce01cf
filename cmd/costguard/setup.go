package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voxlane/costguard/pkg/cli"
	"github.com/voxlane/costguard/pkg/config"
	"github.com/voxlane/costguard/pkg/spend"
	"github.com/voxlane/costguard/pkg/spend/journal"
	"github.com/voxlane/costguard/pkg/spend/storage"
	"github.com/voxlane/costguard/pkg/telemetry/logging"
)

// loadConfig loads the configuration file with environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err.Error())
	}
	return cfg, nil
}

// setupLogger builds the process logger from configuration and installs
// it as the slog default.
func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// openManager builds a Manager from configuration. The caller must
// Close it; Close also releases the store and journal.
func openManager(ctx context.Context, cfg *config.Config, metrics *spend.Metrics) (*spend.Manager, error) {
	logger, err := setupLogger(cfg)
	if err != nil {
		return nil, err
	}

	var store storage.Store
	switch cfg.Storage.Backend {
	case "memory":
		store = storage.NewMemoryStore()
	default:
		store, err = storage.NewSQLiteStoreWithConfig(storage.SQLiteStoreConfig{
			DBPath:             cfg.Storage.Path,
			CheckpointInterval: cfg.Storage.CheckpointInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open state store: %w", err)
		}
	}

	var jnl *journal.Journal
	if cfg.Journal.Enabled {
		jnl, err = journal.Open(journal.Config{
			Path:   cfg.Journal.Path,
			Logger: logger.With("component", "spend.journal"),
		})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
	}

	manager, err := spend.NewManager(ctx, spend.Config{
		Store:               store,
		DailyLimit:          cfg.Budget.DailyLimit,
		Journal:             jnl,
		Metrics:             metrics,
		SaveTimeout:         cfg.Storage.SaveTimeout,
		CacheRetention:      cfg.Cache.Retention,
		MaintenanceSchedule: cfg.Maintenance.Schedule,
		Logger:              logger.With("component", "spend"),
	})
	if err != nil {
		if jnl != nil {
			jnl.Close()
		}
		store.Close()
		return nil, err
	}

	return manager, nil
}
