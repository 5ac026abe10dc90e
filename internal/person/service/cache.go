package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"registru/internal/person/models"
	"registru/internal/platform/redis"
)

const cacheKeyPrefix = "registru:person:"

// Cache is a read-through Redis cache for person-by-id lookups. Cache
// failures degrade to store reads; they are logged, never surfaced.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache wraps a Redis client. Returns nil when the client is nil so the
// service can treat an unconfigured cache and a missing one the same way.
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

// Get returns the cached record or nil on miss.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) *models.Person {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var p models.Person
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn("corrupt person cache entry", "person_id", id, "error", err)
		_ = c.client.Del(ctx, cacheKey(id)).Err()
		return nil
	}
	return &p
}

// Set stores the record under its id with the configured TTL.
func (c *Cache) Set(ctx context.Context, p *models.Person) {
	if c == nil || p == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("marshal person for cache", "person_id", p.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(p.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("write person cache", "person_id", p.ID, "error", err)
	}
}

// Invalidate drops the cached record.
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.Warn("invalidate person cache", "person_id", id, "error", err)
	}
}
