// Package logging assembles the structured slog loggers used across
// gloss commands and engines. It owns the console and JSON handlers and
// the standardized field keys so every component emits data in the same
// shape. Prefer these constructors over hand-rolled slog setup.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Standardized structured logging keys.
const (
	// FieldComponent names the emitting component.
	FieldComponent = "component"
	// FieldRunID carries the pipeline run correlation id.
	FieldRunID = "run_id"
	// FieldContainer names the asset container being processed.
	FieldContainer = "container"
	// FieldPathID carries a content object's container-scoped id.
	FieldPathID = "path_id"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: levelVar})
	case "console":
		handler = newConsoleHandler(out, levelVar)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(handler), nil
}

// LogConfig is the slice of application config the logger needs.
type LogConfig interface {
	LogLevel() string
	LogFormat() string
	LogDirectory() string
}

// FromConfig builds the process logger from configuration, teeing
// output into the configured log directory when one is set.
func FromConfig(cfg LogConfig) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}
	var out io.Writer = os.Stderr
	if dir := cfg.LogDirectory(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		file, err := os.OpenFile(filepath.Join(dir, "gloss.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, file)
	}
	return New(Options{Level: cfg.LogLevel(), Format: cfg.LogFormat(), Output: out})
}

// NewNop returns a logger that discards everything; tests and wiring
// code that cannot fail use it.
func NewNop() *slog.Logger {
	return slog.New(discardHandler{})
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
