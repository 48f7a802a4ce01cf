package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Budget contains spend limit settings.
	Budget BudgetConfig `yaml:"budget"`

	// Storage contains snapshot persistence settings.
	Storage StorageConfig `yaml:"storage"`

	// Journal contains the per-operation cost journal settings.
	Journal JournalConfig `yaml:"journal"`

	// Cache contains artifact cache settings.
	Cache CacheConfig `yaml:"cache"`

	// Maintenance contains background maintenance settings.
	Maintenance MaintenanceConfig `yaml:"maintenance"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BudgetConfig contains spend limit settings.
type BudgetConfig struct {
	// DailyLimit is the daily budget in USD. Must be positive.
	DailyLimit float64 `yaml:"daily_limit"`
}

// StorageConfig contains snapshot persistence settings.
type StorageConfig struct {
	// Backend selects the store implementation ("memory", "sqlite").
	Backend string `yaml:"backend"`

	// Path is the SQLite database file path. Required for sqlite.
	Path string `yaml:"path"`

	// SaveTimeout bounds each snapshot save.
	SaveTimeout time.Duration `yaml:"save_timeout"`

	// CheckpointInterval is how often the SQLite WAL is checkpointed.
	CheckpointInterval time.Duration `yaml:"checkpoint_interval"`
}

// JournalConfig contains the cost journal settings.
type JournalConfig struct {
	// Enabled turns the per-operation journal on.
	Enabled bool `yaml:"enabled"`

	// Path is the journal SQLite database file path.
	Path string `yaml:"path"`
}

// CacheConfig contains artifact cache settings.
type CacheConfig struct {
	// MaxAge is how old a cached artifact may be and still count as a
	// hit.
	MaxAge time.Duration `yaml:"max_age"`

	// Retention is how long unused entries survive maintenance pruning.
	Retention time.Duration `yaml:"retention"`
}

// MaintenanceConfig contains background maintenance settings.
type MaintenanceConfig struct {
	// Schedule is a cron expression for maintenance runs.
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled turns the metrics endpoint on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics HTTP listen address.
	ListenAddress string `yaml:"listen_address"`
}
