package config

import "fmt"

// Validate checks the configuration for errors. It is called after
// defaults and environment overrides have been applied, so every field
// is expected to carry its final value.
func Validate(cfg *Config) error {
	if cfg.Budget.DailyLimit <= 0 {
		return fmt.Errorf("budget.daily_limit must be positive, got %.2f", cfg.Budget.DailyLimit)
	}

	switch cfg.Storage.Backend {
	case "memory":
	case "sqlite":
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("storage.backend must be \"memory\" or \"sqlite\", got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.SaveTimeout <= 0 {
		return fmt.Errorf("storage.save_timeout must be positive, got %s", cfg.Storage.SaveTimeout)
	}

	if cfg.Journal.Enabled && cfg.Journal.Path == "" {
		return fmt.Errorf("journal.path is required when the journal is enabled")
	}

	if cfg.Cache.MaxAge <= 0 {
		return fmt.Errorf("cache.max_age must be positive, got %s", cfg.Cache.MaxAge)
	}
	if cfg.Cache.Retention < cfg.Cache.MaxAge {
		return fmt.Errorf("cache.retention (%s) must not be shorter than cache.max_age (%s)",
			cfg.Cache.Retention, cfg.Cache.MaxAge)
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("telemetry.logging.level %q is not a valid log level", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format %q is not a valid log format", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.ListenAddress == "" {
		return fmt.Errorf("telemetry.metrics.listen_address is required when metrics are enabled")
	}

	return nil
}
