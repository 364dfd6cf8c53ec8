package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores values in the game_store table created by the migrations
// in internal/database.
type Postgres struct {
	db  *pgxpool.Pool
	ttl time.Duration
}

func NewPostgres(db *pgxpool.Pool, ttl time.Duration) *Postgres {
	return &Postgres{db: db, ttl: ttl}
}

func (p *Postgres) Get(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	var v []byte
	err := p.db.QueryRow(
		ctx,
		"SELECT value FROM game_store WHERE key = $1 AND expires_at > now()",
		key,
	).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return decode(v, value)
}

func (p *Postgres) Set(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(
		ctx,
		`INSERT INTO game_store (key, value, expires_at)
		VALUES (@key, @value, @expires_at)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		pgx.NamedArgs{
			"key":        key,
			"value":      b,
			"expires_at": expiry(p.ttl),
		},
	)
	return err
}

func (p *Postgres) Add(ctx context.Context, key string, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"DELETE FROM game_store WHERE key = $1 AND expires_at <= now()",
		key,
	); err != nil {
		return err
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO game_store (key, value, expires_at)
		VALUES (@key, @value, @expires_at)`,
		pgx.NamedArgs{
			"key":        key,
			"value":      b,
			"expires_at": expiry(p.ttl),
		},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return ErrExists
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Purge deletes expired rows.
func (p *Postgres) Purge(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, "DELETE FROM game_store WHERE expires_at <= now()")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
