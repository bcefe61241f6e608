package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sule971/luxe-vogue-boutique/pkg/database"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
)

// KVRepository implements repository.KVRepository using Redis, one string
// key per value.
type KVRepository struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewKVRepository creates a Redis-backed repository. Keys are stored as
// prefix+key. A zero ttl stores values without expiry.
func NewKVRepository(client redis.UniversalClient, prefix string, ttl time.Duration) *KVRepository {
	return &KVRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get retrieves the value stored under key.
func (r *KVRepository) Get(ctx context.Context, key string) (data []byte, err error) {
	ctx, end := database.TraceOp(ctx, database.SystemRedis, "GET", "GET "+r.prefix+key)
	defer func() { end(err) }()

	data, err = r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NotFound("value", key)
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores value under key with the configured TTL.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, end := database.TraceOp(ctx, database.SystemRedis, "SET", "SET "+r.prefix+key)
	defer func() { end(err) }()

	if err = r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *KVRepository) Delete(ctx context.Context, key string) (err error) {
	ctx, end := database.TraceOp(ctx, database.SystemRedis, "DEL", "DEL "+r.prefix+key)
	defer func() { end(err) }()

	if err = r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *KVRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
