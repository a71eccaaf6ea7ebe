package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/storefront/internal/cart/domain"
	"github.com/tranvu/storefront/internal/cart/repository"
	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/pkg/kvstore"
)

func seededRepo(t *testing.T) domain.CartRepository {
	t.Helper()
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())

	ctx := context.Background()
	_, err := repo.AddOrMerge(ctx, domain.CartLine{
		UserID:   "u1",
		Product:  catalog.Product{ID: "1", Name: "A", BasePrice: 100, DiscountPercentage: 10},
		Quantity: 2,
	})
	require.NoError(t, err)
	_, err = repo.AddOrMerge(ctx, domain.CartLine{
		UserID:   "u2",
		Product:  catalog.Product{ID: "2", Name: "B", BasePrice: 50},
		Quantity: 1,
	})
	require.NoError(t, err)
	return repo
}

func TestListLines(t *testing.T) {
	ctx := context.Background()

	t.Run("decorates lines with effective price and line total", func(t *testing.T) {
		handler := NewListLinesHandler(seededRepo(t))

		views, err := handler.Handle(ctx, ListLinesQuery{UserID: "u1"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.InDelta(t, 90.00, views[0].EffectivePrice, 1e-9)
		assert.InDelta(t, 180.00, views[0].LineTotal, 1e-9)
	})

	t.Run("no identity means an empty cart, not an error", func(t *testing.T) {
		handler := NewListLinesHandler(seededRepo(t))

		views, err := handler.Handle(ctx, ListLinesQuery{})
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}

func TestCountLines(t *testing.T) {
	ctx := context.Background()

	t.Run("counts are scoped per user", func(t *testing.T) {
		repo := seededRepo(t)
		handler := NewCountLinesHandler(repo)

		u1, err := handler.Handle(ctx, CountLinesQuery{UserID: "u1"})
		require.NoError(t, err)
		u2, err := handler.Handle(ctx, CountLinesQuery{UserID: "u2"})
		require.NoError(t, err)
		u3, err := handler.Handle(ctx, CountLinesQuery{UserID: "u3"})
		require.NoError(t, err)

		assert.Equal(t, 1, u1)
		assert.Equal(t, 1, u2)
		assert.Equal(t, 0, u3)
	})

	t.Run("no identity counts zero", func(t *testing.T) {
		count, err := NewCountLinesHandler(seededRepo(t)).Handle(ctx, CountLinesQuery{})
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
