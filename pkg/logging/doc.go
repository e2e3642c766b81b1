// Package logging provides structured logging utilities for cookbook components.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// for consistent logging across the CLI and the daemon. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("cookctl", version)
//
//	    slog.Info("applying recipes", "recipes", names)
//	    slog.Debug("cache hit", "recipe", name)
//	    slog.Error("apply failed", "error", err)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cookd", version, "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug cookctl apply -r base -r blog
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "recipe expanded",
//	    "module": "cookctl",
//	    "version": "v0.4.1",
//	    "operations": 12
//	}
//
// Debug logs additionally include the source location of the call site.
//
// # Integration
//
// This package is used by:
//   - pkg/api - daemon bootstrap logging
//   - pkg/cli - CLI command logging
//   - pkg/recipe - loader and cache logging
//   - pkg/batch - batch execution logging
//
// All components share consistent logging format and configuration.
package logging
