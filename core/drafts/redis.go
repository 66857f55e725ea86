package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pricing-modeller/core/pricing"
	"pricing-modeller/core/reconcile"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of the Redis API the draft store needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Connect opens a Redis client and verifies the connection.
func Connect(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps drafts as JSON documents in Redis.
type RedisStore struct {
	client Client
	prefix string
	ttl    time.Duration
}

var _ reconcile.DraftStore = (*RedisStore)(nil)

// NewRedisStore creates a store writing keys under prefix that expire after
// ttl. A zero ttl keeps drafts forever.
func NewRedisStore(client Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Load returns the draft of a session.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (pricing.PricingModel, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return pricing.PricingModel{}, false, nil
	}
	if err != nil {
		return pricing.PricingModel{}, false, fmt.Errorf("failed to read draft: %w", err)
	}

	m, err := pricing.Decode(raw)
	if err != nil {
		return pricing.PricingModel{}, false, fmt.Errorf("failed to decode draft: %w", err)
	}
	return m, true, nil
}

// Save stores the draft of a session and refreshes its expiry.
func (s *RedisStore) Save(ctx context.Context, sessionID string, model pricing.PricingModel) error {
	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// Delete removes the draft of a session.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
