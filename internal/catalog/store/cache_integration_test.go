//go:build integration

package store_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solestore/internal/catalog/models"
	"solestore/internal/catalog/store"
	"solestore/internal/platform/metrics"
	"solestore/internal/platform/redis"
	"solestore/pkg/testutil/containers"
)

func setupCache(t *testing.T) (*store.Cached, *store.MemoryStore) {
	t.Helper()

	rc := containers.NewRedisContainer(t)
	backing := store.NewMemory()
	cached := &store.Cached{
		Next:    backing,
		Redis:   &redis.Client{Client: rc.Client},
		TTL:     time.Minute,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.NewForTest(),
	}
	return cached, backing
}

func TestCachedList_ReadThrough(t *testing.T) {
	cached, backing := setupCache(t)
	ctx := context.Background()

	_, err := backing.Create(ctx, models.Sneaker{Name: "Dunk Low", Brand: "Nike", Price: 110, Sizes: []string{"9"}})
	require.NoError(t, err)

	first, err := cached.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write bypassing invalidation stays invisible while the cache holds.
	_, err = backing.Create(ctx, models.Sneaker{Name: "Air Jordan 1", Brand: "Nike", Price: 180, Sizes: []string{"9"}})
	require.NoError(t, err)

	second, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1, "cached copy served until invalidation")
}

func TestCachedList_MutationInvalidates(t *testing.T) {
	cached, _ := setupCache(t)
	ctx := context.Background()

	_, err := cached.Create(ctx, models.Sneaker{Name: "Dunk Low", Brand: "Nike", Price: 110, Sizes: []string{"9"}})
	require.NoError(t, err)

	first, err := cached.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = cached.Create(ctx, models.Sneaker{Name: "Air Jordan 1", Brand: "Nike", Price: 180, Sizes: []string{"9"}})
	require.NoError(t, err)

	second, err := cached.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2, "create must drop the cached list")
}

func TestCachedList_ExplicitInvalidate(t *testing.T) {
	cached, backing := setupCache(t)
	ctx := context.Background()

	_, err := backing.Create(ctx, models.Sneaker{Name: "Dunk Low", Brand: "Nike", Price: 110, Stock: 5, Sizes: []string{"9"}})
	require.NoError(t, err)

	_, err = cached.List(ctx)
	require.NoError(t, err)

	// Simulates the order service clearing stale stock after a commit.
	sneaker, err := backing.FindByID(ctx, 1)
	require.NoError(t, err)
	sneaker.Stock = 3
	require.NoError(t, backing.Update(ctx, sneaker))
	cached.Invalidate(ctx)

	fresh, err := cached.List(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, 3, fresh[0].Stock)
}
