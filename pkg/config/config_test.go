package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "costguard.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
budget:
  daily_limit: 50.00
storage:
  backend: sqlite
  path: /var/lib/costguard/state.db
journal:
  enabled: true
  path: /var/lib/costguard/journal.db
cache:
  max_age: 12h
telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Budget.DailyLimit != 50.00 {
		t.Errorf("daily limit = %.2f, want 50.00", cfg.Budget.DailyLimit)
	}
	if cfg.Storage.Path != "/var/lib/costguard/state.db" {
		t.Errorf("storage path = %q", cfg.Storage.Path)
	}
	if cfg.Cache.MaxAge != 12*time.Hour {
		t.Errorf("cache max age = %s, want 12h", cfg.Cache.MaxAge)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Telemetry.Logging.Level)
	}

	// Unset fields picked up defaults.
	if cfg.Storage.SaveTimeout != DefaultSaveTimeout {
		t.Errorf("save timeout = %s, want default %s", cfg.Storage.SaveTimeout, DefaultSaveTimeout)
	}
	if cfg.Cache.Retention != DefaultCacheRetention {
		t.Errorf("cache retention = %s, want default %s", cfg.Cache.Retention, DefaultCacheRetention)
	}
	if cfg.Maintenance.Schedule != DefaultMaintenanceSched {
		t.Errorf("maintenance schedule = %q, want default", cfg.Maintenance.Schedule)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "budget: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "negative daily limit",
			content: "budget:\n  daily_limit: -5\n",
			wantMsg: "daily_limit",
		},
		{
			name:    "unknown backend",
			content: "storage:\n  backend: postgres\n",
			wantMsg: "storage.backend",
		},
		{
			name:    "retention shorter than max age",
			content: "cache:\n  max_age: 48h\n  retention: 24h\n",
			wantMsg: "cache.retention",
		},
		{
			name:    "bad log level",
			content: "telemetry:\n  logging:\n    level: loud\n",
			wantMsg: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "budget:\n  daily_limit: 50.00\n")

	t.Setenv("COSTGUARD_BUDGET_DAILY_LIMIT", "25.00")
	t.Setenv("COSTGUARD_STORAGE_BACKEND", "memory")
	t.Setenv("COSTGUARD_CACHE_MAX_AGE", "6h")
	t.Setenv("COSTGUARD_JOURNAL_ENABLED", "true")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Budget.DailyLimit != 25.00 {
		t.Errorf("daily limit = %.2f, want env override 25.00", cfg.Budget.DailyLimit)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Cache.MaxAge != 6*time.Hour {
		t.Errorf("cache max age = %s, want 6h", cfg.Cache.MaxAge)
	}
	if !cfg.Journal.Enabled {
		t.Error("journal not enabled by env override")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfigFile(t, "budget:\n  daily_limit: 50.00\n")

	// An override that fails validation surfaces as an error rather
	// than silently reverting to the file value.
	t.Setenv("COSTGUARD_BUDGET_DAILY_LIMIT", "-1")

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Error("expected validation error for negative override")
	}
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		t.Errorf("defaulted config failed validation: %v", err)
	}
	if cfg.Budget.DailyLimit != DefaultDailyLimit {
		t.Errorf("daily limit = %.2f, want default %.2f", cfg.Budget.DailyLimit, DefaultDailyLimit)
	}
	if cfg.Storage.Backend != DefaultStorageBackend {
		t.Errorf("backend = %q, want default %q", cfg.Storage.Backend, DefaultStorageBackend)
	}
}
