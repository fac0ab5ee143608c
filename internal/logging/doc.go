// Package logging assembles the structured slog loggers used by the batch
// runner and its stages.
//
// It owns the console and JSON handlers, the OK level used to report stage
// success, and context-aware helpers that tag log lines with the job ID,
// stage, and source file. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
package logging
