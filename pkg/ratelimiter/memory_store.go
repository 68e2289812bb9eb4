package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory. Use it for a single instance
// or in tests; RedisStore shares limits across instances.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time

	cleanupInterval time.Duration
	staleAfter      time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often idle buckets are swept. 0 disables
// the sweeper.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithMemoryClock replaces time.Now, for tests.
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucket),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}
	if ms.cleanupInterval > 0 {
		go ms.sweep()
	}
	return ms
}

func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucket{tokens: config.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}

	// Capped so a long-idle bucket cannot overflow the multiplication.
	maxSteps := int64(config.Capacity/config.RefillRate + 1)
	steps := int(min(int64(now.Sub(b.lastRefill)/config.RefillInterval), maxSteps))
	if steps > 0 {
		b.tokens = min(b.tokens+steps*config.RefillRate, config.Capacity)
		b.lastRefill = now
	}

	b.tokens -= tokens
	b.lastAccess = now
	return b.tokens, b.lastRefill.Add(config.RefillInterval), nil
}

func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.buckets, key)
	return nil
}

// Len returns the number of tracked buckets.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets)
}

func (ms *MemoryStore) sweep() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.RemoveStale()
		case <-ms.stop:
			return
		}
	}
}

// RemoveStale drops buckets idle for over an hour.
func (ms *MemoryStore) RemoveStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > ms.staleAfter {
			delete(ms.buckets, key)
		}
	}
}

// Close stops the sweeper. Safe to call more than once.
func (ms *MemoryStore) Close() {
	ms.stopOnce.Do(func() { close(ms.stop) })
}
