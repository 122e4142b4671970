package gate

import (
	"context"
	"sync"
	"time"
)

// Record is the per-client throttle state.
type Record struct {
	Attempts     int        `json:"attempts"`
	LastAttempt  time.Time  `json:"last_attempt"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

// Blocked reports whether the record rejects attempts at now.
func (r Record) Blocked(now time.Time) bool {
	return r.BlockedUntil != nil && now.Before(*r.BlockedUntil)
}

// Store persists throttle records keyed by client key. Implementations only
// need to be memory safe; two concurrent attempts from the same key may both
// read the same count.
type Store interface {
	Get(ctx context.Context, key string) (Record, bool, error)
	Put(ctx context.Context, key string, rec Record) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps records for the lifetime of the process. Restarting the
// process or running several replicas resets or splits the counters.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	return rec, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Len returns the number of tracked clients.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
