package agent

import (
	"context"
	"sync"
	"time"
)

// Cache is the key/value backend behind a Store.
type Cache[S any] interface {
	Set(ctx context.Context, key string, val S) error
	Get(ctx context.Context, key string) (S, bool, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type cacheEntry[S any] struct {
	val       S
	expiresAt time.Time
}

// MemoryCache keeps entries in process. With a TTL, entries not written for
// that long are dropped on the next access.
type MemoryCache[S any] struct {
	mu  sync.Mutex
	m   map[string]cacheEntry[S]
	ttl time.Duration
	now func() time.Time
}

type MemoryCacheOption func(*memoryCacheOptions)

type memoryCacheOptions struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL expires entries ttl after their last Set. Zero keeps them forever.
func WithTTL(ttl time.Duration) MemoryCacheOption {
	return func(o *memoryCacheOptions) {
		o.ttl = ttl
	}
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) MemoryCacheOption {
	return func(o *memoryCacheOptions) {
		o.now = now
	}
}

func NewMemoryCache[S any](opts ...MemoryCacheOption) *MemoryCache[S] {
	options := memoryCacheOptions{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &MemoryCache[S]{
		m:   map[string]cacheEntry[S]{},
		ttl: options.ttl,
		now: options.now,
	}
}

func (m *MemoryCache[S]) Set(ctx context.Context, key string, val S) error {
	entry := cacheEntry[S]{val: val}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[key] = entry
	return nil
}

func (m *MemoryCache[S]) Get(ctx context.Context, key string) (S, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.lookup(key)
	return entry.val, ok, nil
}

func (m *MemoryCache[S]) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, key)
	return nil
}

func (m *MemoryCache[S]) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lookup(key)
	return ok, nil
}

// Len reports the number of stored entries, expired ones included until they
// are next touched.
func (m *MemoryCache[S]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.m)
}

// lookup must be called with mu held.
func (m *MemoryCache[S]) lookup(key string) (cacheEntry[S], bool) {
	entry, ok := m.m[key]
	if !ok {
		return cacheEntry[S]{}, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.m, key)
		return cacheEntry[S]{}, false
	}
	return entry, true
}
