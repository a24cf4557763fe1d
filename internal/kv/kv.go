// Package kv is the small key/value storage abstraction behind the notice
// modal gate and the translation cache.
package kv

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store is a string key/value store. Get reports found=false for a missing
// key rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DefaultMaxEntries bounds a Memory store unless WithMaxEntries says otherwise.
const DefaultMaxEntries = 10000

type memoryEntry struct {
	value     string
	expiresAt time.Time
	seq       uint64
}

// Memory is an in-process Store. A zero ttl keeps entries forever. Once the
// store holds maxEntries keys, a Set of a new key first drops expired entries
// and then the oldest tenth of what remains.
type Memory struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	seq        uint64
	now        func() time.Time
}

type MemoryOption func(*Memory)

// WithMaxEntries caps the number of keys held. n <= 0 removes the cap.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) { m.maxEntries = n }
}

func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		data:       make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.data, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		m.sweepLocked()
		if len(m.data) >= m.maxEntries {
			m.evictOldestLocked(m.maxEntries/10 + 1)
		}
	}

	m.seq++
	e := memoryEntry{value: value, seq: m.seq}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.data[key] = e
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len reports the number of keys held, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Sweep drops every expired entry.
func (m *Memory) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
}

// Run sweeps the store every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

func (m *Memory) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for k, e := range m.data {
		if !now.Before(e.expiresAt) {
			delete(m.data, k)
		}
	}
}

func (m *Memory) evictOldestLocked(n int) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return m.data[keys[i]].seq < m.data[keys[j]].seq })
	if n > len(keys) {
		n = len(keys)
	}
	for _, k := range keys[:n] {
		delete(m.data, k)
	}
}

// Prefixed namespaces every key of an underlying Store.
func Prefixed(s Store, prefix string) Store {
	return &prefixed{inner: s, prefix: prefix}
}

type prefixed struct {
	inner  Store
	prefix string
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.inner.Remove(ctx, p.prefix+key)
}
