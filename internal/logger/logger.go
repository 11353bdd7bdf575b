// Package logger builds the process slog.Logger. Logs go to stderr so stdout
// stays reserved for command output.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

const sentryFlushTimeout = 2 * time.Second

// Options configures New.
type Options struct {
	Level     string
	Format    string
	SentryDSN string
	Release   string
}

// Logger wraps a configured slog.Logger and the level it was built with.
type Logger struct {
	*slog.Logger
	level  *slog.LevelVar
	sentry bool
}

// ParseLevel accepts debug, info, warn/warning, error (case-insensitive).
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// New returns a text or JSON logger writing to w, fanned out to Sentry for
// error-level records when a DSN is configured.
func New(w io.Writer, opts Options) (*Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(lvl)

	handlerOpts := &slog.HandlerOptions{Level: levelVar}
	var handlers []slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		handlers = append(handlers, slog.NewTextHandler(w, handlerOpts))
	case "json":
		handlers = append(handlers, slog.NewJSONHandler(w, handlerOpts))
	default:
		return nil, fmt.Errorf("unknown log format: %s", opts.Format)
	}

	l := &Logger{level: levelVar}
	if opts.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: opts.SentryDSN, Release: opts.Release}); err != nil {
			return nil, fmt.Errorf("init sentry: %w", err)
		}
		handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		l.sentry = true
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}
	l.Logger = slog.New(handler)
	return l, nil
}

// Discard returns a logger that drops everything, for tests and library callers.
func Discard() *Logger {
	levelVar := new(slog.LevelVar)
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelVar})), level: levelVar}
}

// SetLevel changes the level of an existing logger.
func (l *Logger) SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.Set(lvl)
	return nil
}

// Named returns a child logger tagged with a component name.
func (l *Logger) Named(name string) *slog.Logger {
	return l.With(slog.String("component", name))
}

// Flush waits for queued Sentry events before the process exits.
func (l *Logger) Flush() {
	if l.sentry {
		sentry.Flush(sentryFlushTimeout)
	}
}
