// Package logging configures the process-wide structured logger.
//
// # Overview
//
// All components log through Go's standard log/slog with a shared
// handler built here:
//   - JSON or text output formats
//   - Configurable log levels (debug, info, warn, error)
//   - Optional source file and line attribution
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Components derive scoped loggers.
//	ledgerLog := logger.With("component", "spend.ledger")
//	ledgerLog.Info("recorded cost", "service", "speech-synthesis", "amount", 0.25)
//
// The returned value is a plain *slog.Logger, so callers pass it
// anywhere slog is accepted and tests substitute slog.New over a
// buffer.
package logging
