package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vancomm/minesweeper-api/internal/config"
	"github.com/vancomm/minesweeper-api/internal/database"
)

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, logger *slog.Logger, cfg *config.Store) (Store, error) {
	logger = logger.With(slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory store", slog.Duration("ttl", cfg.TTL))
		return NewMemory(cfg.TTL), nil

	case config.DriverFile:
		logger.Info("using file store", slog.String("dir", cfg.DataDir))
		return NewFile(cfg.DataDir, cfg.TTL)

	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s, err := NewSQLite(db, "games", cfg.TTL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("unable to create sqlite store: %w", err)
		}
		logger.Info("using sqlite store", slog.String("path", cfg.SQLitePath))
		return s, nil

	case config.DriverPostgres:
		db, migrator, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		version, dirty, err := migrator.Version()
		if err != nil {
			logger.Warn("failed to check migration version", slog.Any("error", err))
		} else {
			logger.Info(
				"using postgres store",
				slog.Uint64("migration", uint64(version)),
				slog.Bool("dirty", dirty),
			)
		}
		migrator.Close()
		return NewPostgres(db, cfg.TTL), nil

	case config.DriverRedis:
		s, err := NewRedis(ctx, cfg.RedisAddr, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		logger.Info("using redis store", slog.String("addr", cfg.RedisAddr))
		return s, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
