package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

type SQLite struct {
	mu   sync.Mutex
	name string
	ttl  time.Duration
	db   *sql.DB
}

func isLetters(s string) bool {
	for _, c := range s {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return s != ""
}

func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// a single connection keeps writers from racing for the file lock
	db.SetMaxOpenConns(1)
	return db, nil
}

// Creates a new [SQLite] store backed by table name. name may only contain
// upper- or lowercase Latin letters.
func NewSQLite(db *sql.DB, name string, ttl time.Duration) (*SQLite, error) {
	if !isLetters(name) {
		return nil, fmt.Errorf("%w: table %q", ErrBadKey, name)
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + name + ` (
	key			TEXT PRIMARY KEY,
	value		BLOB NOT NULL,
	expires_at	INTEGER NOT NULL
);`)
	if err != nil {
		return nil, err
	}
	s := &SQLite{name: name, ttl: ttl, db: db}
	return s, nil
}

func (s *SQLite) Get(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	var v []uint8
	if err := s.db.QueryRowContext(ctx,
		`SELECT value FROM `+s.name+` WHERE key = ? AND expires_at > ?;`,
		key, time.Now().UnixMilli()).Scan(&v); errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return decode(v, value)
}

func (s *SQLite) Set(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO `+s.name+` (key, value, expires_at)
VALUES(?, ?, ?)
ON CONFLICT(key)
DO UPDATE SET value=excluded.value, expires_at=excluded.expires_at;`,
		key, b, expiry(s.ttl).UnixMilli())
	return err
}

func (s *SQLite) Add(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM `+s.name+` WHERE key = ? AND expires_at <= ?;`,
		key, now.UnixMilli(),
	); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+s.name+` (key, value, expires_at) VALUES(?, ?, ?);`,
		key, b, now.Add(s.ttl).UnixMilli(),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return ErrExists
	}
	return err
}

// Purge deletes expired rows.
func (s *SQLite) Purge(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM `+s.name+` WHERE expires_at <= ?;`, time.Now().UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
