package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys under CatalogPrefix hold derived views of the property collection and
// are dropped together whenever a listing changes.
const (
	CatalogPrefix     = "catalog:"
	SummariesKey      = CatalogPrefix + "summaries"
	LocationsKey      = CatalogPrefix + "locations"
	searchKeyPrefix   = CatalogPrefix + "search:"
	propertyKeyPrefix = CatalogPrefix + "property:"
)

// ConnectRedis initializes and returns a Redis client instance.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Connected to Redis at %s", addr)
	return rdb, nil
}

// DisconnectRedis closes the Redis client connection.
func DisconnectRedis(client *redis.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	log.Println("Redis connection closed.")
	return nil
}

// ICatalogCache stores JSON snapshots of catalog reads.
type ICatalogCache interface {
	// Get decodes the cached value into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// Invalidate removes every catalog key.
	Invalidate(ctx context.Context) error
}

type redisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCatalogCache returns a Redis backed cache. A nil client yields a cache
// that never hits.
func NewCatalogCache(rdb *redis.Client, ttl time.Duration) ICatalogCache {
	if rdb == nil {
		return NopCache{}
	}
	return &redisCatalogCache{rdb: rdb, ttl: ttl}
}

func (c *redisCatalogCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *redisCatalogCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *redisCatalogCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	var keys []string
	for {
		batch, next, err := c.rdb.Scan(ctx, cursor, CatalogPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for _, k := range keys {
		pipe.Del(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	log.Printf("Invalidated %d catalog cache keys", len(keys))
	return nil
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, interface{}) error { return nil }
func (NopCache) Invalidate(context.Context) error { return nil }

// SearchKey derives a stable key for a search from its parameters. Params
// must be JSON encodable; map keys are encoded in sorted order.
func SearchKey(params interface{}) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("cache key for %T: %w", params, err)
	}
	sum := sha256.Sum256(data)
	return searchKeyPrefix + hex.EncodeToString(sum[:]), nil
}

// PropertyKey is the key for a single property detail view.
func PropertyKey(id string) string {
	return propertyKeyPrefix + id
}
