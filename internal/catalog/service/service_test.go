package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solestore/internal/catalog/models"
	"solestore/internal/catalog/service"
	"solestore/internal/catalog/store"
	dErrors "solestore/pkg/domain-errors"
)

func newCatalogService() (*service.Service, *store.MemoryStore) {
	backing := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewService(backing, logger), backing
}

func validSneaker() models.Sneaker {
	return models.Sneaker{
		Name:  "Dunk Low",
		Brand: "Nike",
		Price: 110,
		Stock: 5,
		Sizes: []string{"9", "10"},
	}
}

func TestList_EmptyCatalogServesSampleData(t *testing.T) {
	svc, _ := newCatalogService()

	sneakers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sneakers, "fresh install must not render an empty storefront")
	assert.Equal(t, "Air Max 270", sneakers[0].Name)
}

func TestList_PopulatedCatalog(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	id, err := svc.Create(ctx, validSneaker())
	require.NoError(t, err)

	sneakers, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sneakers, 1)
	assert.Equal(t, id, sneakers[0].ID)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newCatalogService()

	_, err := svc.Create(context.Background(), models.Sneaker{Price: -1})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeValidation))

	var de *dErrors.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Details, "Name is required")
	assert.Contains(t, de.Details, "Price must be positive")
	assert.Contains(t, de.Details, "At least one size is required")
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newCatalogService()

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _ := newCatalogService()
	ctx := context.Background()

	id, err := svc.Create(ctx, validSneaker())
	require.NoError(t, err)

	updated := validSneaker()
	updated.ID = id
	updated.Stock = 12
	require.NoError(t, svc.Update(ctx, updated))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
