// internal/logging/logging.go

// Package logging wraps slog.Logger with alnn-specific helpers so every
// stage reports with the same field names.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger wraps slog.Logger with domain helpers.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w in the given format ("text" or "json").
// A nil w writes to stderr.
func New(w io.Writer, format string, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(h)}
}

// Noop discards everything.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))}
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// ValidFormat reports whether f is a supported log format.
func ValidFormat(f string) bool { return f == FormatText || f == FormatJSON }

// LogLoad logs the outcome of parsing the input alignment.
func (l *Logger) LogLoad(ctx context.Context, path string, records, width int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "unable to parse FASTA file",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "alignment loaded",
		"path", path,
		"records", records,
		"width", width,
	)
}

// LogFilter logs how many records a query or database restriction selected.
// An empty idFile means the whole collection is used.
func (l *Logger) LogFilter(ctx context.Context, role, idFile string, selected, total int) {
	if idFile == "" {
		l.InfoContext(ctx, "no id file given, the entire collection will be used",
			"role", role,
			"selected", selected,
		)
		return
	}
	l.InfoContext(ctx, "subset selected",
		"role", role,
		"id_file", idFile,
		"selected", selected,
		"total", total,
	)
}

// LogSearch logs a finished nearest-neighbour run.
func (l *Logger) LogSearch(ctx context.Context, metric string, queries, database, workers int, elapsed time.Duration) {
	l.InfoContext(ctx, "nearest neighbours computed",
		"metric", metric,
		"queries", queries,
		"database", database,
		"workers", workers,
		"elapsed", elapsed.Round(time.Millisecond),
	)
}

// LogWrite logs the result file outcome.
func (l *Logger) LogWrite(ctx context.Context, path string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "writing results failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "successfully computed nearest neighbors",
		"path", path,
		"rows", rows,
	)
}
