package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/sievekit/sieve/pkg/ports"
)

// Store implements ports.SchemaStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored schemas.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for schemas.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "sieve:schema:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the raw schema to Redis.
func (s *Store) Save(ctx context.Context, name string, raw map[string]any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	pipe := s.client.Pipeline()

	// 1. Save JSON with TTL (0 means no expiration).
	pipe.Set(ctx, s.key(name), data, s.ttl)

	// 2. Add to Index (ZSET). Score = Now + TTL; far-future when no TTL.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the raw schema from Redis.
func (s *Store) Load(ctx context.Context, name string) (map[string]any, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, ports.ErrSchemaNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(val), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	return raw, nil
}

// Delete removes the schema.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()

	delCmd := pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	if delCmd.Val() == 0 {
		return ports.ErrSchemaNotFound
	}
	return nil
}

// List returns stored schema names using ZSET lazy cleanup.
func (s *Store) List(ctx context.Context) ([]string, error) {
	// Lazy Cleanup: remove expired entries from the index.
	// When everything is stored without TTL this removes nothing.
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired schemas: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
