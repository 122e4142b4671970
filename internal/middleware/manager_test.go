package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mettaway/ventara/internal/config"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Gate: config.GateConfig{
			Password:      "fly-to-ventara",
			MaxAttempts:   5,
			AttemptWindow: 5 * time.Minute,
			BlockDuration: time.Minute,
			Backend:       backend,
		},
		Session: *testSessionConfig(),
		Redis:   config.RedisConfig{KeyPrefix: "ventara:gate:"},
	}
}

func TestNewManager_MemoryBackend(t *testing.T) {
	m, err := NewManager(testConfig(config.RateLimitBackendMemory), testLogger())
	require.NoError(t, err)
	defer m.Close()

	assert.Nil(t, m.RedisClient)
	assert.NotNil(t, m.Session)
	assert.NoError(t, m.ReadinessCheck()())

	res, err := m.Gate.Validate(context.Background(), "fly-to-ventara", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Authenticated)
}

func TestNewManager_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.RateLimitBackendRedis)
	cfg.Redis.Address = mr.Addr()

	m, err := NewManager(cfg, testLogger())
	require.NoError(t, err)
	defer m.Close()

	require.NotNil(t, m.RedisClient)
	assert.NoError(t, m.ReadinessCheck()())

	res, err := m.Gate.Validate(context.Background(), "wrong", "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, res.Authenticated)
	assert.True(t, mr.Exists("ventara:gate:10.0.0.2"))
	assert.Equal(t, 6*time.Minute, mr.TTL("ventara:gate:10.0.0.2"))
}

func TestNewManager_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.RateLimitBackendRedis)
	cfg.Redis.Address = mr.Addr()
	mr.Close()

	_, err := NewManager(cfg, testLogger())
	assert.Error(t, err)
}
