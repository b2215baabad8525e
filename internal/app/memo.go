package service

import (
	"sync"

	"github.com/goldinfc/scorebook/pkg/metrics"
)

// memo caches derived engine results keyed by the snapshot version
// they were computed from. The engine is pure, so a cached value is
// valid exactly as long as the version it saw; any write bumps the
// version and the whole cache resets.
type memo struct {
	mu      sync.Mutex
	version uint64
	entries map[string]any
}

func newMemo() *memo {
	return &memo{entries: map[string]any{}}
}

func (m *memo) get(version uint64, key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if version != m.version {
		return nil, false
	}
	v, ok := m.entries[key]
	if ok {
		metrics.RecordMemoHit()
	}
	return v, ok
}

func (m *memo) put(version uint64, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if version != m.version {
		m.version = version
		m.entries = map[string]any{}
	}
	m.entries[key] = value
}
