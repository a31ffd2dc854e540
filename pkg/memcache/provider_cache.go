package mem

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache: key not found")

// ProviderCache stores raw provider responses keyed by request.
type ProviderCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type localCache struct {
	store *gocache.Cache
}

func NewLocalCache(defaultTTL time.Duration) ProviderCache {
	return &localCache{store: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (c *localCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return v.([]byte), nil
}

func (c *localCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

type redisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client) ProviderCache {
	return &redisCache{client: client, prefix: "tripwise:provider:"}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// NewProviderCache prefers redis and falls back to process memory when client is nil.
func NewProviderCache(client *redis.Client, defaultTTL time.Duration) ProviderCache {
	if client == nil {
		return NewLocalCache(defaultTTL)
	}
	return NewRedisCache(client)
}

func GetJSON(ctx context.Context, cache ProviderCache, key string, dest any) error {
	data, err := cache.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func SetJSON(ctx context.Context, cache ProviderCache, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cache.Set(ctx, key, data, ttl)
}
