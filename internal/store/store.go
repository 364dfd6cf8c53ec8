package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"time"
)

var (
	ErrBadKey   = fmt.Errorf("bad key for store")
	ErrNotFound = fmt.Errorf("value not found")
	ErrExists   = fmt.Errorf("key already exists")
)

// Store keeps whole gob-encoded values under string keys. Values expire after
// the store's TTL and then read as [ErrNotFound].
type Store interface {
	// Get decodes the value stored under key into value, which must be a
	// pointer or nil. If value is nil, data read from store is discarded.
	Get(ctx context.Context, key string, value any) error
	// Set inserts a new key-value pair or replaces an existing one.
	Set(ctx context.Context, key string, value any) error
	// Add inserts a new key-value pair and fails with [ErrExists] if the key
	// is present and not expired.
	Add(ctx context.Context, key string, value any) error
	Close() error
}

// Purger is implemented by stores that keep expired values around until they
// are explicitly removed.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

func isKeyChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' || c == '-' || c == '_'
}

// keys may only contain Latin letters, digits, '-' and '_'
func checkKey(key string) error {
	if key == "" {
		return ErrBadKey
	}
	for _, c := range key {
		if !isKeyChar(c) {
			return fmt.Errorf("%w: %q", ErrBadKey, key)
		}
	}
	return nil
}

func encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, value any) error {
	if value == nil {
		return nil
	}
	return gob.NewDecoder(bytes.NewReader(data)).Decode(value)
}

func expiry(ttl time.Duration) time.Time {
	return time.Now().Add(ttl)
}
