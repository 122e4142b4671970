// Package gate implements the shared-password access gate and its
// brute-force throttle.
package gate

import (
	"context"
	"crypto/subtle"
	"errors"
	"math"
	"time"

	"github.com/mettaway/ventara/internal/logging"
	"github.com/mettaway/ventara/internal/metrics"

	"github.com/sirupsen/logrus"
)

// ErrMissingSecret is returned when no password was presented. It never
// touches the throttle.
var ErrMissingSecret = errors.New("password is required")

// Config holds the gate tunables.
type Config struct {
	Secret        string
	MaxAttempts   int
	AttemptWindow time.Duration
	BlockDuration time.Duration
	Delay         time.Duration
}

// Result is the outcome of one Validate call.
type Result struct {
	// Allowed is false when the throttle rejected the attempt.
	Allowed       bool
	Authenticated bool
	RetryAfter    time.Duration
	Attempts      int
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds.
func (r Result) RetryAfterSeconds() int {
	if r.RetryAfter <= 0 {
		return 0
	}
	return int(math.Ceil(r.RetryAfter.Seconds()))
}

// Option customises a Gate.
type Option func(*Gate)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithSleeper replaces the artificial delay implementation.
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(g *Gate) { g.sleep = sleep }
}

type Gate struct {
	cfg    Config
	store  Store
	logger *logrus.Logger
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
}

func New(cfg Config, store Store, logger *logrus.Logger, opts ...Option) *Gate {
	g := &Gate{
		cfg:    cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate checks secret for the caller identified by clientKey.
func (g *Gate) Validate(ctx context.Context, secret, clientKey string) (Result, error) {
	if secret == "" {
		return Result{}, ErrMissingSecret
	}

	res, limited := g.throttle(ctx, clientKey)
	if limited {
		return res, nil
	}

	if err := g.sleep(ctx, g.cfg.Delay); err != nil {
		return Result{}, err
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(g.cfg.Secret)) != 1 {
		metrics.RecordGateAttempt("denied")
		g.logger.WithFields(logrus.Fields{
			"client_key": clientKey,
			"attempts":   res.Attempts,
		}).Info("Gate password rejected")
		return Result{Allowed: true, Attempts: res.Attempts}, nil
	}

	// Successful login clears the client's history.
	if err := g.store.Delete(ctx, clientKey); err != nil {
		logging.WithClientKey(g.logger, clientKey).WithError(err).Warn("Failed to clear rate limit record")
	}

	metrics.RecordGateAttempt("granted")
	logging.WithClientKey(g.logger, clientKey).Info("Gate password accepted")

	return Result{Allowed: true, Authenticated: true}, nil
}

// throttle counts the attempt and reports whether it must be rejected.
// Store failures fail open.
func (g *Gate) throttle(ctx context.Context, clientKey string) (Result, bool) {
	now := g.now()

	rec, found, err := g.store.Get(ctx, clientKey)
	if err != nil {
		metrics.RecordGateAttempt("store_error")
		logging.WithClientKey(g.logger, clientKey).WithError(err).Error("Rate limit check failed")
		return Result{Allowed: true}, false
	}

	if found && rec.Blocked(now) {
		metrics.RecordGateAttempt("blocked")
		return Result{
			Allowed:    false,
			RetryAfter: rec.BlockedUntil.Sub(now),
			Attempts:   rec.Attempts,
		}, true
	}

	switch {
	case !found, rec.BlockedUntil != nil, now.Sub(rec.LastAttempt) > g.cfg.AttemptWindow:
		rec = Record{Attempts: 1, LastAttempt: now}
	default:
		rec.Attempts++
		rec.LastAttempt = now
	}

	limited := rec.Attempts > g.cfg.MaxAttempts
	if limited {
		until := now.Add(g.cfg.BlockDuration)
		rec.BlockedUntil = &until
	}

	if err := g.store.Put(ctx, clientKey, rec); err != nil {
		logging.WithClientKey(g.logger, clientKey).WithError(err).Error("Failed to store rate limit record")
	}

	if limited {
		metrics.RecordGateAttempt("blocked")
		g.logger.WithFields(logrus.Fields{
			"client_key":    clientKey,
			"attempts":      rec.Attempts,
			"blocked_until": rec.BlockedUntil,
		}).Warn("Gate rate limit exceeded")
		return Result{
			Allowed:    false,
			RetryAfter: g.cfg.BlockDuration,
			Attempts:   rec.Attempts,
		}, true
	}

	return Result{Allowed: true, Attempts: rec.Attempts}, false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
