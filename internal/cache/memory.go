package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process cache with real TTL semantics, used as a drop-in
// substitute for Redis in tests. The clock is injectable so expiry can be
// exercised without sleeping.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// Now is the clock used for expiry checks. Defaults to time.Now.
	Now func() time.Time

	// Err, when set, is returned by every operation. Lets tests simulate
	// an unavailable cache.
	Err error
}

type memoryEntry struct {
	value   string
	expires time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), Now: time.Now}
}

func (m *Memory) Ping(ctx context.Context) error {
	return m.Err
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if m.Err != nil {
		return "", false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || m.Now().After(e.expires) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *Memory) SetTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expires: m.Now().Add(ttl)}
	return nil
}

func (m *Memory) Del(ctx context.Context, key string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
