package middleware

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mettaway/ventara/internal/config"
	"github.com/mettaway/ventara/internal/gate"
)

// Manager holds the request-path components shared by the handlers.
type Manager struct {
	Gate        *gate.Gate
	Session     *SessionManager
	ErrorLogger *ErrorLoggerMiddleware
	RedisClient redis.UniversalClient // nil with the in-memory gate backend
	Config      *config.Config
	Logger      *logrus.Logger
}

// NewManager builds the gate (with its configured throttle store) and the
// session manager.
func NewManager(cfg *config.Config, logger *logrus.Logger) (*Manager, error) {
	m := &Manager{
		Session:     NewSessionManager(&cfg.Session, cfg.Server.IsProduction(), logger),
		ErrorLogger: NewErrorLoggerMiddleware(logger),
		Config:      cfg,
		Logger:      logger,
	}

	var store gate.Store
	switch cfg.Gate.Backend {
	case config.RateLimitBackendRedis:
		client, err := NewRedisUniversalClient(&cfg.Redis, &cfg.AWS, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis client: %w", err)
		}
		m.RedisClient = client
		ttl := cfg.Gate.AttemptWindow + cfg.Gate.BlockDuration
		store = gate.NewBreakerStore(gate.NewRedisStore(client, cfg.Redis.KeyPrefix, ttl), logger)
	default:
		logger.Warn("Gate throttle uses in-memory storage; counters reset on restart and are per instance")
		store = gate.NewMemoryStore()
	}

	m.Gate = gate.New(gate.Config{
		Secret:        cfg.Gate.Password,
		MaxAttempts:   cfg.Gate.MaxAttempts,
		AttemptWindow: cfg.Gate.AttemptWindow,
		BlockDuration: cfg.Gate.BlockDuration,
		Delay:         cfg.Gate.Delay,
	}, store, logger)

	return m, nil
}

// ReadinessCheck reports whether the gate's backing store is reachable.
func (m *Manager) ReadinessCheck() func() error {
	if m.RedisClient == nil {
		return func() error { return nil }
	}
	return RedisHealthCheck(m.RedisClient, m.Logger)
}

// Close closes all middleware resources
func (m *Manager) Close() error {
	if m.RedisClient != nil {
		return m.RedisClient.Close()
	}
	return nil
}
