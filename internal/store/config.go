package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the SQLite connection pool backing the store.
type Config struct {
	Path            string
	BusyTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns the pool settings used when no overrides are present.
func DefaultConfig() Config {
	return Config{
		Path:            "tenderd.db",
		BusyTimeout:     5 * time.Second,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 15 * time.Minute,
	}
}

// LoadConfig resolves the store configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv("TENDERD_DB_PATH")); path != "" {
		cfg.Path = path
	}
	if raw := strings.TrimSpace(os.Getenv("TENDERD_DB_BUSY_TIMEOUT")); raw != "" {
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse TENDERD_DB_BUSY_TIMEOUT: %w", err)
		}
		cfg.BusyTimeout = dur
	}
	if raw := strings.TrimSpace(os.Getenv("TENDERD_DB_MAX_OPEN_CONNS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("parse TENDERD_DB_MAX_OPEN_CONNS: %q", raw)
		}
		cfg.MaxOpenConns = n
	}
	if raw := strings.TrimSpace(os.Getenv("TENDERD_DB_MAX_IDLE_CONNS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("parse TENDERD_DB_MAX_IDLE_CONNS: %q", raw)
		}
		cfg.MaxIdleConns = n
	}
	return cfg, nil
}
