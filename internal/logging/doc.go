// Package logging constructs slog loggers for the CLI and the generation
// pipeline, supporting console and JSON formats with optional file outputs
// under the configured log directory.
package logging
