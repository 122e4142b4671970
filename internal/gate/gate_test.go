package gate

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "fly-to-ventara"

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingSleeper struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, d)
	return nil
}

func (s *recordingSleeper) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func defaultConfig() Config {
	return Config{
		Secret:        testSecret,
		MaxAttempts:   5,
		AttemptWindow: 5 * time.Minute,
		BlockDuration: time.Minute,
		Delay:         500 * time.Millisecond,
	}
}

func newTestGate(store Store) (*Gate, *fakeClock, *recordingSleeper) {
	clock := newFakeClock()
	sleeper := &recordingSleeper{}
	g := New(defaultConfig(), store, testLogger(), WithClock(clock.Now), WithSleeper(sleeper.Sleep))
	return g, clock, sleeper
}

func TestGate_WrongPasswordWithinLimitIsNotBlocked(t *testing.T) {
	g, clock, _ := newTestGate(NewMemoryStore())
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		res, err := g.Validate(ctx, "wrong", "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "attempt %d should not be throttled", i)
		assert.False(t, res.Authenticated)
		assert.Equal(t, i, res.Attempts)
		assert.Zero(t, res.RetryAfterSeconds())
		clock.Advance(10 * time.Second)
	}
}

func TestGate_SixthWrongAttemptBlocks(t *testing.T) {
	g, clock, sleeper := newTestGate(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := g.Validate(ctx, "wrong", "10.0.0.1")
		require.NoError(t, err)
	}

	res, err := g.Validate(ctx, "wrong", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.False(t, res.Authenticated)
	assert.Equal(t, 60, res.RetryAfterSeconds())

	// Even the right password is refused while blocked, and not counted.
	clock.Advance(30 * time.Second)
	res, err = g.Validate(ctx, testSecret, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.False(t, res.Authenticated)
	assert.Equal(t, 30, res.RetryAfterSeconds())
	assert.Equal(t, 6, res.Attempts)

	// The artificial delay only runs for attempts that reach the comparison.
	assert.Equal(t, 5, sleeper.Count())
}

func TestGate_CorrectPasswordAfterBlockClearsRecord(t *testing.T) {
	store := NewMemoryStore()
	g, clock, _ := newTestGate(store)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := g.Validate(ctx, "wrong", "10.0.0.1")
		require.NoError(t, err)
	}

	clock.Advance(61 * time.Second)

	res, err := g.Validate(ctx, testSecret, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.True(t, res.Authenticated)
	assert.Equal(t, 0, store.Len())

	res, err = g.Validate(ctx, "wrong", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Attempts, "counting restarts after a successful login")
}

func TestGate_SuccessNeverCountsTowardLimit(t *testing.T) {
	store := NewMemoryStore()
	g, _, _ := newTestGate(store)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		res, err := g.Validate(ctx, testSecret, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, res.Authenticated, "login %d", i)
	}
	assert.Equal(t, 0, store.Len())
}

func TestGate_WindowExpiryResetsCounter(t *testing.T) {
	g, clock, _ := newTestGate(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := g.Validate(ctx, "wrong", "10.0.0.3")
		require.NoError(t, err)
	}

	clock.Advance(5*time.Minute + time.Second)

	res, err := g.Validate(ctx, "wrong", "10.0.0.3")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Attempts)
}

func TestGate_KeysAreIndependent(t *testing.T) {
	g, _, _ := newTestGate(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := g.Validate(ctx, "wrong", "10.0.0.4")
		require.NoError(t, err)
	}

	res, err := g.Validate(ctx, testSecret, "10.0.0.5")
	require.NoError(t, err)
	assert.True(t, res.Authenticated)
}

func TestGate_MissingSecretHasNoSideEffects(t *testing.T) {
	store := NewMemoryStore()
	g, _, sleeper := newTestGate(store)

	_, err := g.Validate(context.Background(), "", "10.0.0.6")
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, sleeper.Count())
}

func TestGate_DelayAppliedBeforeComparison(t *testing.T) {
	g, _, sleeper := newTestGate(NewMemoryStore())

	_, err := g.Validate(context.Background(), "wrong", "10.0.0.7")
	require.NoError(t, err)
	require.Equal(t, 1, sleeper.Count())
	assert.Equal(t, 500*time.Millisecond, sleeper.calls[0])
}

func TestGate_CancelledContextAbortsDelay(t *testing.T) {
	g := New(defaultConfig(), NewMemoryStore(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Validate(ctx, testSecret, "10.0.0.8")
	assert.ErrorIs(t, err, context.Canceled)
}

type failingStore struct {
	err   error
	calls int
}

func (s *failingStore) Get(context.Context, string) (Record, bool, error) {
	s.calls++
	return Record{}, false, s.err
}

func (s *failingStore) Put(context.Context, string, Record) error {
	s.calls++
	return s.err
}

func (s *failingStore) Delete(context.Context, string) error {
	s.calls++
	return s.err
}

func TestGate_StoreFailureFailsOpen(t *testing.T) {
	g, _, _ := newTestGate(&failingStore{err: errors.New("redis down")})

	res, err := g.Validate(context.Background(), testSecret, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.True(t, res.Authenticated)

	res, err = g.Validate(context.Background(), "wrong", "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.False(t, res.Authenticated)
}

func TestResult_RetryAfterSecondsRoundsUp(t *testing.T) {
	assert.Equal(t, 2, Result{RetryAfter: 1500 * time.Millisecond}.RetryAfterSeconds())
	assert.Equal(t, 0, Result{}.RetryAfterSeconds())
}
