// Package logging provides structured logging for lettucectl.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the client. Logging is silent by default so
// the interactive TUI stays clean; set LETTUCECTL_LOG_LEVEL to enable
// output.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (per-request Engine traffic)
//   - Info: Normal operations (screen loads, config saves)
//   - Warn: Non-fatal issues (swallowed non-critical call failures)
//   - Error: Fatal issues (startup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Character loaded",
//	    zap.String("slug", "ada-lovelace"),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
