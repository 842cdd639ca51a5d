// Package log builds the slog handlers used by csvplot.
//
// Records are written by charmbracelet/log, which implements [slog.Handler],
// so every package logs through the standard [slog.Logger] API.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Format is a log output format.
type Format string

const (
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"
)

// DefaultLevel keeps the interactive prompt free of log lines.
const DefaultLevel = slog.LevelWarn

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		Prefix:          "csvplot",
	}

	switch format {
	case FormatJSON:
		opts.Formatter = log.JSONFormatter
	case FormatLogfmt:
		opts.Formatter = log.LogfmtFormatter
	default:
		opts.Formatter = log.TextFormatter
	}

	return log.NewWithOptions(w, opts)
}

// CreateHandlerWithStrings parses level and format before calling
// [CreateHandler].
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, lvl, f), nil
}

// ParseLevel parses a level name. An empty name yields [DefaultLevel].
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return DefaultLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}

// ParseFormat parses a format name. An empty name yields [FormatText].
func ParseFormat(format string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(format))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatLogfmt, FormatJSON:
		return f, nil
	}

	return FormatText, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
