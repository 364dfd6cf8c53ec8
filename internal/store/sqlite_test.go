package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestSQLite(t *testing.T, ttl time.Duration) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "sqlite-storage.db"))
	require.NoError(t, err)

	s, err := NewSQLite(db, "teststore", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	testStore(t, setupTestSQLite(t, time.Hour))
}

func TestSQLiteBadTableName(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "bad.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{"", "games; DROP TABLE x", "games2"} {
		_, err := NewSQLite(db, name, time.Hour)
		assert.ErrorIs(t, err, ErrBadKey, name)
	}
}

func TestSQLiteExpires(t *testing.T) {
	s := setupTestSQLite(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "fresh", 1))
	require.NoError(t, s.Set(ctx, "stale", 2))
	_, err := s.db.Exec(
		`UPDATE teststore SET expires_at = ? WHERE key = ?;`,
		time.Now().Add(-time.Minute).UnixMilli(), "stale",
	)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Get(ctx, "stale", nil), ErrNotFound)
	assert.NoError(t, s.Get(ctx, "fresh", nil))

	// an expired key can be claimed again
	require.NoError(t, s.Add(ctx, "stale", 3))
	var v int
	require.NoError(t, s.Get(ctx, "stale", &v))
	assert.Equal(t, 3, v)

	_, err = s.db.Exec(
		`UPDATE teststore SET expires_at = ?;`, time.Now().Add(-time.Minute).UnixMilli(),
	)
	require.NoError(t, err)
	n, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
