// Package cli holds shared wiring for the sieve commands.
package cli

import (
	"log/slog"
	"time"

	"github.com/sievekit/sieve/internal/adapters/memory"
	"github.com/sievekit/sieve/internal/adapters/redis"
	"github.com/sievekit/sieve/pkg/ports"
)

// StoreOptions selects and configures the schema storage backend.
type StoreOptions struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// NewStore initializes a schema store with standard CLI conventions.
// An empty RedisAddr selects the in-memory store. The returned closer
// releases backend resources and is safe to call on any store.
func NewStore(opts StoreOptions) (ports.SchemaStore, func() error) {
	if opts.RedisAddr == "" {
		return memory.NewStore(), func() error { return nil }
	}

	var storeOpts []redis.Option
	if opts.TTL > 0 {
		storeOpts = append(storeOpts, redis.WithTTL(opts.TTL))
	}
	store := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, storeOpts...)
	return store, store.Close
}

// ParseLevel maps a --log-level flag value to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
