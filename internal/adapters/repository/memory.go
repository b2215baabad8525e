package repository

import (
	"context"
	"sync"

	"github.com/goldinfc/scorebook/internal/domain/model"
)

// MemoryStore keeps the snapshot in memory. It backs tests and runs
// without a configured database path.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot model.Snapshot
	version  uint64
	closed   bool
}

// NewMemoryStore creates a store seeded with the given snapshot.
func NewMemoryStore(seed model.Snapshot) *MemoryStore {
	return &MemoryStore{
		snapshot: model.NormalizeSnapshot(seed),
		version:  1,
	}
}

// Snapshot returns a normalized copy of the current state.
func (s *MemoryStore) Snapshot(_ context.Context) (model.Snapshot, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.Snapshot{}, 0, ErrClosed
	}
	return model.NormalizeSnapshot(s.snapshot), s.version, nil
}

// ReplaceSnapshot swaps in a whole new state.
func (s *MemoryStore) ReplaceSnapshot(_ context.Context, snap model.Snapshot) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	s.snapshot = model.NormalizeSnapshot(snap)
	s.version++
	return s.version, nil
}

// PutPlayers replaces the global player list.
func (s *MemoryStore) PutPlayers(_ context.Context, players []model.Player) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	next := s.snapshot
	next.Players = players
	s.snapshot = model.NormalizeSnapshot(next)
	s.version++
	return s.version, nil
}

// PutSession stores a session under its Sunday key.
func (s *MemoryStore) PutSession(_ context.Context, date string, sess model.Session) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", 0, ErrClosed
	}
	key := model.NormalizeDate(date)
	s.snapshot.SessionsByDate[key] = model.NormalizeSession(sess)
	s.version++
	return key, s.version, nil
}

// SetSessionDate selects the current play date.
func (s *MemoryStore) SetSessionDate(_ context.Context, date string) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", 0, ErrClosed
	}
	key := model.NormalizeDate(date)
	s.snapshot.SessionDate = key
	if _, ok := s.snapshot.SessionsByDate[key]; !ok {
		s.snapshot.SessionsByDate[key] = model.EmptySession()
	}
	s.version++
	return key, s.version, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
