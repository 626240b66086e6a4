package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog/internal/catalog/models"
)

// Cached decorates a Store with a Redis read-through cache on FindByID.
// Mutations invalidate the cached document before hitting the inner store,
// so a cache outage degrades to extra reads, never to stale writes: cache
// errors are logged and the lookup falls through to the inner store.
type Cached struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a Redis cache. A zero ttl disables expiry.
func NewCached(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id string) string {
	return "catalog:item:" + id
}

func (c *Cached) FindByID(ctx context.Context, id string) (*models.Item, error) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var item models.Item
		if err := json.Unmarshal(raw, &item); err == nil {
			return &item, nil
		}
		// Undecodable entry: drop it and fall through to the inner store.
		c.client.Del(ctx, cacheKey(id))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "item cache read failed", "id", id, "error", err)
	}

	item, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, item)
	return item, nil
}

func (c *Cached) fill(ctx context.Context, item *models.Item) {
	raw, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(item.ID), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "item cache write failed", "id", item.ID, "error", err)
	}
}

func (c *Cached) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.WarnContext(ctx, "item cache invalidation failed", "id", id, "error", err)
	}
}

func (c *Cached) FindByName(ctx context.Context, name string) (*models.Item, error) {
	return c.inner.FindByName(ctx, name)
}

func (c *Cached) FindByCode(ctx context.Context, code string) (*models.Item, error) {
	return c.inner.FindByCode(ctx, code)
}

func (c *Cached) Find(ctx context.Context, filter models.Filter) ([]*models.Item, error) {
	return c.inner.Find(ctx, filter)
}

func (c *Cached) Insert(ctx context.Context, item *models.Item) (string, error) {
	return c.inner.Insert(ctx, item)
}

func (c *Cached) ReplaceByID(ctx context.Context, id string, item *models.Item) (*models.Item, error) {
	c.invalidate(ctx, id)
	updated, err := c.inner.ReplaceByID(ctx, id, item)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, updated)
	return updated, nil
}

func (c *Cached) DeleteByID(ctx context.Context, id string) (bool, error) {
	c.invalidate(ctx, id)
	return c.inner.DeleteByID(ctx, id)
}
