package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

func BasePath() string {
	return strings.TrimSuffix(os.Getenv("APP_BASE_PATH"), "/")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8000"
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

// AllowedOrigins returns the CORS_ALLOWED_ORIGINS list. An empty list means
// any origin is allowed.
func AllowedOrigins() []string {
	origins := make([]string, 0)
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// MaxMoveWait bounds how long a move may wait for its game to be released by
// a concurrent move. Zero means no bound other than the request's.
func MaxMoveWait() (time.Duration, error) {
	return durationEnv("MAX_MOVE_WAIT", 0)
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(name)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s env variable: negative duration", name)
	}
	return d, nil
}
