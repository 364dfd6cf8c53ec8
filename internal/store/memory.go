package store

import (
	"context"
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache"
)

type Memory struct {
	mu    sync.Mutex
	ttl   time.Duration
	cache *ttlcache.Cache
}

// NewMemory keeps encoded values in process memory. Stored values are copies,
// so callers may keep mutating what they passed to Set.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, cache: ttlcache.NewCache()}
}

func (m *Memory) Get(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	v, ok := m.cache.Get(key)
	if !ok {
		return ErrNotFound
	}
	return decode(v.([]byte), value)
}

func (m *Memory) Set(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.SetWithTTL(key, b, m.ttl)
	return nil
}

func (m *Memory) Add(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cache.Get(key); ok {
		return ErrExists
	}
	m.cache.SetWithTTL(key, b, m.ttl)
	return nil
}

func (m *Memory) Close() error {
	m.cache.Close()
	return nil
}
