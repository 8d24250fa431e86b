// Package logging builds the slog loggers used across tubescribe.
//
// Two handler formats are supported: a console handler that renders
// timestamp, level, an optional component prefix, and key=value attributes on
// one line, and a JSON handler for machine consumption. Output goes to stdout
// and, when a log directory is configured, to a per-run log file as well.
package logging
