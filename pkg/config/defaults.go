package config

import "time"

// Default configuration values.
const (
	DefaultDailyLimit         = 10.00
	DefaultStorageBackend     = "sqlite"
	DefaultStoragePath        = "costguard.db"
	DefaultSaveTimeout        = 3 * time.Second
	DefaultCheckpointInterval = 5 * time.Minute
	DefaultJournalPath        = "journal.db"
	DefaultCacheMaxAge        = 24 * time.Hour
	DefaultCacheRetention     = 7 * 24 * time.Hour
	DefaultMaintenanceSched   = "@every 1m"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsAddress     = "127.0.0.1:9464"
)

// ApplyDefaults fills in default values for unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Budget.DailyLimit == 0 {
		cfg.Budget.DailyLimit = DefaultDailyLimit
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.Storage.SaveTimeout == 0 {
		cfg.Storage.SaveTimeout = DefaultSaveTimeout
	}
	if cfg.Storage.CheckpointInterval == 0 {
		cfg.Storage.CheckpointInterval = DefaultCheckpointInterval
	}

	if cfg.Journal.Path == "" {
		cfg.Journal.Path = DefaultJournalPath
	}

	if cfg.Cache.MaxAge == 0 {
		cfg.Cache.MaxAge = DefaultCacheMaxAge
	}
	if cfg.Cache.Retention == 0 {
		cfg.Cache.Retention = DefaultCacheRetention
	}

	if cfg.Maintenance.Schedule == "" {
		cfg.Maintenance.Schedule = DefaultMaintenanceSched
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsAddress
	}
}
