// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package. The server logs JSON to
// stdout; the terminal client logs text to stderr so it does not interleave
// with what the user is reading. Request-scoped loggers travel in the context.
package logger
