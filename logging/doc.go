// Package logging builds the structured slog loggers used by the converter
// service and CLI. Records are JSON by default; the text format is meant for
// interactive terminal use.
package logging
