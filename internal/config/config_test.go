package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort(t *testing.T) {
	t.Setenv("APP_PORT", "")
	assert.Equal(t, ":8000", Port())

	t.Setenv("APP_PORT", "9000")
	assert.Equal(t, ":9000", Port())

	t.Setenv("APP_PORT", "127.0.0.1:9000")
	assert.Equal(t, "127.0.0.1:9000", Port())
}

func TestBasePath(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "/minesweeper/")
	assert.Equal(t, "/minesweeper", BasePath())
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Empty(t, AllowedOrigins())

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOrigins())
}

func TestMaxMoveWait(t *testing.T) {
	t.Setenv("MAX_MOVE_WAIT", "")
	d, err := MaxMoveWait()
	require.NoError(t, err)
	assert.Zero(t, d)

	t.Setenv("MAX_MOVE_WAIT", "250ms")
	d, err = MaxMoveWait()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	t.Setenv("MAX_MOVE_WAIT", "soon")
	_, err = MaxMoveWait()
	assert.Error(t, err)

	t.Setenv("MAX_MOVE_WAIT", "-1s")
	_, err = MaxMoveWait()
	assert.Error(t, err)
}

func TestNewStoreDefaults(t *testing.T) {
	for _, name := range []string{"STORE_DRIVER", "STORE_TTL", "DATA_DIR", "SQLITE_PATH", "REDIS_ADDR"} {
		t.Setenv(name, "")
	}

	cfg, err := NewStore()
	require.NoError(t, err)
	assert.Equal(t, &Store{
		Driver:     DriverMemory,
		TTL:        24 * time.Hour,
		DataDir:    "data",
		SQLitePath: "games.db",
	}, cfg)
}

func TestNewStoreRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "etcd"}},
		{"redis without addr", map[string]string{"STORE_DRIVER": "redis", "REDIS_ADDR": ""}},
		{"zero ttl", map[string]string{"STORE_TTL": "0s"}},
		{"bad ttl", map[string]string{"STORE_TTL": "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", "")
			t.Setenv("STORE_TTL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewStore()
			assert.Error(t, err)
		})
	}
}

func TestNewStoreRedis(t *testing.T) {
	t.Setenv("STORE_TTL", "")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := NewStore()
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Driver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestDbURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/games")
	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/games", url)
}

func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	os.Unsetenv(name)
}

func TestDbURLFromParts(t *testing.T) {
	unsetEnv(t, "DATABASE_URL")
	t.Setenv("POSTGRES_USER", "mines")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "games")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_SSLMODE", "")

	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("p@ss word\n"), 0o600))
	t.Setenv("POSTGRES_PASSWORD_FILE", passwordFile)
	unsetEnv(t, "POSTGRES_PASSWORD")

	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://mines:p%40ss+word@db:5432/games?sslmode=disable", url)
}

func TestDbURLMissing(t *testing.T) {
	for _, name := range []string{"DATABASE_URL", "POSTGRES_USER", "POSTGRES_HOST", "POSTGRES_DB"} {
		unsetEnv(t, name)
	}
	_, err := DbURL()
	assert.Error(t, err)
}

func TestWebSocketOrigins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	ws, err := NewWebSocket(nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://b.example")
	assert.True(t, ws.Upgrader.CheckOrigin(req))

	ws, err = NewWebSocket([]string{"https://a.example"})
	require.NoError(t, err)
	assert.False(t, ws.Upgrader.CheckOrigin(req))
	req.Header.Set("Origin", "https://a.example")
	assert.True(t, ws.Upgrader.CheckOrigin(req))
}

func TestDevelopment(t *testing.T) {
	unsetEnv(t, "DEVELOPMENT")
	assert.False(t, Development())

	for value, want := range map[string]bool{
		"1": true, "true": true, "yes": true, "0": false, "false": false, "": false,
	} {
		t.Setenv("DEVELOPMENT", value)
		assert.Equal(t, want, Development(), value)
	}
}
