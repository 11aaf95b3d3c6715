package authority

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session records in Redis under "session:<token>" with a
// fixed TTL. Each operation is a single round trip.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed authority store. ttl applies to every
// record; a Set on an existing token overwrites it and resets the expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Set(ctx context.Context, token string, rec Record) error {
	if token == "" || rec.ID == "" {
		return fmt.Errorf("authority: missing token or identity id")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("authority: failed to marshal record: %w", err)
	}

	return r.client.Set(ctx, r.key(token), data, r.ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Record, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // missing or expired
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("authority: failed to unmarshal record: %w", err)
	}

	return &rec, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}
