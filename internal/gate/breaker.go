package gate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrBreakerOpen is returned while the breaker refuses store calls.
var ErrBreakerOpen = errors.New("circuit breaker is open, refusing rate limit store call")

// BreakerState represents the current state of the circuit breaker
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "CLOSED"
	}
}

// BreakerStore wraps a remote Store so that a struggling backend is skipped
// quickly instead of slowing every password attempt.
type BreakerStore struct {
	next   Store
	logger *logrus.Logger
	now    func() time.Time

	mu                sync.Mutex
	state             BreakerState
	failureCount      int
	successCount      int
	lastFailureTime   time.Time
	maxFailures       int           // Open circuit after N failures
	resetTimeout      time.Duration // Wait before trying half-open
	halfOpenSuccesses int           // Required successes to close circuit
}

// NewBreakerStore creates a circuit breaker around next
func NewBreakerStore(next Store, logger *logrus.Logger) *BreakerStore {
	return &BreakerStore{
		next:              next,
		logger:            logger,
		now:               time.Now,
		state:             StateClosed,
		maxFailures:       5,
		resetTimeout:      10 * time.Second,
		halfOpenSuccesses: 3,
	}
}

func (b *BreakerStore) Get(ctx context.Context, key string) (Record, bool, error) {
	var (
		rec Record
		ok  bool
	)
	err := b.execute(func() error {
		var err error
		rec, ok, err = b.next.Get(ctx, key)
		return err
	})
	return rec, ok, err
}

func (b *BreakerStore) Put(ctx context.Context, key string, rec Record) error {
	return b.execute(func() error { return b.next.Put(ctx, key, rec) })
}

func (b *BreakerStore) Delete(ctx context.Context, key string) error {
	return b.execute(func() error { return b.next.Delete(ctx, key) })
}

// execute runs fn unless the breaker is open.
func (b *BreakerStore) execute(fn func() error) error {
	b.mu.Lock()
	if b.state == StateOpen {
		if b.now().Sub(b.lastFailureTime) <= b.resetTimeout {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
		b.state = StateHalfOpen
		b.successCount = 0
		b.logger.Info("Circuit breaker: OPEN → HALF_OPEN (retry attempt)")
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.onFailure(err)
		return err
	}

	b.onSuccess()
	return nil
}

func (b *BreakerStore) onFailure(err error) {
	b.failureCount++
	b.lastFailureTime = b.now()

	switch b.state {
	case StateClosed:
		if b.failureCount >= b.maxFailures {
			b.state = StateOpen
			b.logger.WithFields(logrus.Fields{
				"failure_count": b.failureCount,
				"error":         err.Error(),
			}).Error("Circuit breaker: CLOSED → OPEN (rate limit store unavailable)")
		}

	case StateHalfOpen:
		b.state = StateOpen
		b.failureCount = 0
		b.logger.WithError(err).Error("Circuit breaker: HALF_OPEN → OPEN (rate limit store still unhealthy)")
	}
}

func (b *BreakerStore) onSuccess() {
	b.successCount++

	switch b.state {
	case StateClosed:
		b.failureCount = 0

	case StateHalfOpen:
		if b.successCount >= b.halfOpenSuccesses {
			b.state = StateClosed
			b.failureCount = 0
			b.successCount = 0
			b.logger.Info("Circuit breaker: HALF_OPEN → CLOSED (rate limit store recovered)")
		}
	}
}

// State returns the current circuit breaker state
func (b *BreakerStore) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Stats returns current circuit breaker statistics
func (b *BreakerStore) Stats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	return map[string]interface{}{
		"state":         b.state.String(),
		"failure_count": b.failureCount,
		"success_count": b.successCount,
		"max_failures":  b.maxFailures,
		"last_failure":  b.lastFailureTime,
		"reset_timeout": b.resetTimeout.String(),
	}
}
