package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures the Sentry log destination.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// NewWithSentry creates a logger that writes JSON to stdout and forwards
// warnings and errors to Sentry. An empty DSN degrades to stdout only, so
// the same code path works unconfigured in development.
func NewWithSentry(level slog.Level, cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	if cfg.DSN == "" {
		return slog.New(Decorate(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("sentry init failed, falling back to stdout", "error", err)
		return slog.New(Decorate(stdout, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(Decorate(&tee{handlers: []slog.Handler{stdout, sentryHandler}}, extractors...))
}
