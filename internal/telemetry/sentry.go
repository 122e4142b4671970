package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/mettaway/ventara/internal/config"
)

// SentryReporter sends events through its own hub so tests and the
// process-wide client never share scope.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentry builds a reporter. Extra client options are applied last and
// exist for tests (BeforeSend).
func NewSentry(cfg config.SentryConfig, environment, release string, opts ...func(*sentry.ClientOptions)) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      environment,
		Release:          release,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	}
	for _, opt := range opts {
		opt(&clientOpts)
	}

	client, err := sentry.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentry client: %w", err)
	}

	return &SentryReporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (r *SentryReporter) CaptureMessage(message string, level Level, ev Event) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		applyEvent(scope, level, ev)
		r.hub.CaptureMessage(message)
	})
}

func (r *SentryReporter) CaptureError(err error, level Level, ev Event) {
	if err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		applyEvent(scope, level, ev)
		r.hub.CaptureException(err)
	})
}

func (r *SentryReporter) Flush(timeout time.Duration) bool {
	return r.hub.Flush(timeout)
}

func applyEvent(scope *sentry.Scope, level Level, ev Event) {
	scope.SetLevel(sentryLevel(level))
	for k, v := range ev.Tags {
		scope.SetTag(k, v)
	}
	extra := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range ev.Extra {
		extra[k] = v
	}
	scope.SetExtras(extra)
	if ev.UserEmail != "" {
		scope.SetUser(sentry.User{Email: ev.UserEmail})
	}
}

func sentryLevel(level Level) sentry.Level {
	switch level {
	case LevelInfo:
		return sentry.LevelInfo
	case LevelWarning:
		return sentry.LevelWarning
	default:
		return sentry.LevelError
	}
}
