package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XJIeI5/calcengine/internal/config"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to the server in c.Redis. Keys are c.KeyPrefix + id and
// expire after c.TTL of inactivity.
func NewRedis(ctx context.Context, c *config.Storage) (Store, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
	if err := rc.Ping(ctx).Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("redis ping %s: %w", c.Redis.Addr, err)
	}
	return NewRedisFromClient(rc, c.KeyPrefix, c.TTL), nil
}

func NewRedisFromClient(rc *redis.Client, prefix string, ttl time.Duration) Store {
	return &redisStore{rc: rc, prefix: prefix, ttl: ttl}
}

func (r *redisStore) key(id string) string {
	return r.prefix + id
}

func (r *redisStore) Save(ctx context.Context, id string, value float32) error {
	return r.rc.Set(ctx, r.key(id), encodeValue(value), r.ttl).Err()
}

func (r *redisStore) Load(ctx context.Context, id string) (float32, error) {
	raw, err := r.rc.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return decodeValue(raw)
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return r.rc.Del(ctx, r.key(id)).Err()
}

func (r *redisStore) Close() error {
	return r.rc.Close()
}
