package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clinicops/pt-followup/internal/visits"
)

const (
	visitsKey    = "pt:visits"
	scriptURLKey = "pt:sheets_url"
)

// Cache is the local fallback store: the serialized record list under one
// key, the configured web-app URL under another. It is read on startup when
// no remote endpoint is configured or when the remote fetch fails, and
// written after every successful local mutation.
type Cache struct {
	redis *redis.Client
}

// NewCache creates a cache over an existing Redis client.
func NewCache(redisClient *redis.Client) *Cache {
	return &Cache{redis: redisClient}
}

// SaveRecords overwrites the cached record list.
func (c *Cache) SaveRecords(ctx context.Context, records []visits.VisitRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cache: marshal visits: %w", err)
	}
	if err := c.redis.Set(ctx, visitsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("cache: save visits: %w", err)
	}
	return nil
}

// LoadRecords reads the cached record list. A missing key is ErrCacheMiss,
// which is distinct from a cached empty list.
func (c *Cache) LoadRecords(ctx context.Context) ([]visits.VisitRecord, error) {
	data, err := c.redis.Get(ctx, visitsKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: load visits: %w", err)
	}
	var records []visits.VisitRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("cache: unmarshal visits: %w", err)
	}
	return records, nil
}

// Clear deletes the record list key entirely: the explicit reset state.
func (c *Cache) Clear(ctx context.Context) error {
	if err := c.redis.Del(ctx, visitsKey).Err(); err != nil {
		return fmt.Errorf("cache: clear visits: %w", err)
	}
	return nil
}

// SaveScriptURL remembers the remote endpoint URL across restarts.
func (c *Cache) SaveScriptURL(ctx context.Context, url string) error {
	if err := c.redis.Set(ctx, scriptURLKey, url, 0).Err(); err != nil {
		return fmt.Errorf("cache: save script url: %w", err)
	}
	return nil
}

// LoadScriptURL returns the remembered endpoint URL, empty when unset.
func (c *Cache) LoadScriptURL(ctx context.Context) (string, error) {
	url, err := c.redis.Get(ctx, scriptURLKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cache: load script url: %w", err)
	}
	return url, nil
}
