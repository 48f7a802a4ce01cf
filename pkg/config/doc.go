// Package config loads and validates costguard configuration.
//
// # Overview
//
// Configuration is a YAML file with environment variable overrides.
// Loading always follows the same sequence:
//
//  1. Parse YAML from file
//  2. Apply default values
//  3. Apply COSTGUARD_* environment overrides
//  4. Validate the final configuration
//
// # Example
//
//	budget:
//	  daily_limit: 50.00
//	storage:
//	  backend: sqlite
//	  path: costguard.db
//	journal:
//	  enabled: true
//	  path: journal.db
//	cache:
//	  max_age: 24h
//	  retention: 168h
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9464
//
// Environment variables follow COSTGUARD_SECTION_FIELD, for example
// COSTGUARD_BUDGET_DAILY_LIMIT=25.00, and always take precedence over
// the file.
//
// A Watcher reloads the file on change so a running process picks up
// daily-limit edits without restarting.
package config
