package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"solestore/internal/catalog/models"
	"solestore/internal/platform/metrics"
	"solestore/internal/platform/redis"
)

const listKey = "catalog:sneakers"

// Cached decorates a sneaker store with a Redis read-through cache on List.
// Cache failures degrade to the backing store; mutations invalidate.
type Cached struct {
	Next    Store
	Redis   *redis.Client
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Store is the sneaker persistence interface the cache wraps.
type Store interface {
	List(ctx context.Context) ([]models.Sneaker, error)
	FindByID(ctx context.Context, id int64) (models.Sneaker, error)
	Create(ctx context.Context, sneaker models.Sneaker) (int64, error)
	Update(ctx context.Context, sneaker models.Sneaker) error
	Delete(ctx context.Context, id int64) error
}

func (c *Cached) List(ctx context.Context) ([]models.Sneaker, error) {
	if payload, err := c.Redis.Get(ctx, listKey).Bytes(); err == nil {
		var sneakers []models.Sneaker
		if err := json.Unmarshal(payload, &sneakers); err == nil {
			c.Metrics.CacheHits.Inc()
			return sneakers, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		// Redis temporarily unavailable; fall through to the backing store.
		c.Logger.WarnContext(ctx, "catalog cache read failed", "error", err)
	}

	c.Metrics.CacheMisses.Inc()
	sneakers, err := c.Next.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(sneakers); err == nil {
		if err := c.Redis.Set(ctx, listKey, payload, c.TTL).Err(); err != nil {
			c.Logger.WarnContext(ctx, "catalog cache backfill failed", "error", err)
		}
	}
	return sneakers, nil
}

func (c *Cached) FindByID(ctx context.Context, id int64) (models.Sneaker, error) {
	return c.Next.FindByID(ctx, id)
}

func (c *Cached) Create(ctx context.Context, sneaker models.Sneaker) (int64, error) {
	id, err := c.Next.Create(ctx, sneaker)
	if err == nil {
		c.invalidate(ctx)
	}
	return id, err
}

func (c *Cached) Update(ctx context.Context, sneaker models.Sneaker) error {
	err := c.Next.Update(ctx, sneaker)
	if err == nil {
		c.invalidate(ctx)
	}
	return err
}

func (c *Cached) Delete(ctx context.Context, id int64) error {
	err := c.Next.Delete(ctx, id)
	if err == nil {
		c.invalidate(ctx)
	}
	return err
}

// Invalidate drops the cached list. Exposed so the order transaction can
// clear stale stock counts after a commit.
func (c *Cached) Invalidate(ctx context.Context) {
	c.invalidate(ctx)
}

func (c *Cached) invalidate(ctx context.Context) {
	if err := c.Redis.Del(ctx, listKey).Err(); err != nil {
		c.Logger.WarnContext(ctx, "catalog cache invalidation failed", "error", err)
	}
}
