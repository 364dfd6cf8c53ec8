package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Store struct {
	Driver     string
	TTL        time.Duration
	DataDir    string
	SQLitePath string
	RedisAddr  string
}

func lookupOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return fallback
}

func NewStore() (*Store, error) {
	ttl, err := durationEnv("STORE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if ttl == 0 {
		return nil, fmt.Errorf("STORE_TTL must be positive")
	}

	cfg := &Store{
		Driver:     strings.ToLower(lookupOr("STORE_DRIVER", DriverMemory)),
		TTL:        ttl,
		DataDir:    lookupOr("DATA_DIR", "data"),
		SQLitePath: lookupOr("SQLITE_PATH", "games.db"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
	}

	switch cfg.Driver {
	case DriverMemory, DriverFile, DriverSQLite, DriverPostgres:
	case DriverRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR env variable is not set")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}

	return cfg, nil
}
