package command

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

func newRepo() domain.CartRepository {
	return repository.NewKVCartRepository(kvstore.NewMemoryStore())
}

func product(id string) catalog.Product {
	return catalog.Product{ID: id, Name: "Product " + id, BasePrice: 100, Stock: 10}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity defaults to one", func(t *testing.T) {
		repo := newRepo()
		handler := NewAddItemHandler(repo)

		count, err := handler.Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1")})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		lines, err := repo.LinesFor(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 1, lines[0].Quantity)
	})

	t.Run("repeat add merges instead of duplicating", func(t *testing.T) {
		repo := newRepo()
		handler := NewAddItemHandler(repo)

		_, err := handler.Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1"), Quantity: 2})
		require.NoError(t, err)
		count, err := handler.Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1"), Quantity: 3})
		require.NoError(t, err)

		assert.Equal(t, 1, count)
		lines, err := repo.LinesFor(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		handler := NewAddItemHandler(newRepo())

		_, err := handler.Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1"), Quantity: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("requires user and product", func(t *testing.T) {
		handler := NewAddItemHandler(newRepo())

		_, err := handler.Handle(ctx, AddItemCommand{Product: product("p1")})
		assert.Error(t, err)

		_, err = handler.Handle(ctx, AddItemCommand{UserID: "u1"})
		assert.Error(t, err)
	})
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero quantity is rejected, not treated as removal", func(t *testing.T) {
		repo := newRepo()
		_, err := NewAddItemHandler(repo).Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1"), Quantity: 2})
		require.NoError(t, err)

		handler := NewSetQuantityHandler(repo)
		_, err = handler.Handle(ctx, SetQuantityCommand{UserID: "u1", ProductID: "p1", Quantity: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

		lines, err := repo.LinesFor(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("updates an existing line", func(t *testing.T) {
		repo := newRepo()
		_, err := NewAddItemHandler(repo).Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1")})
		require.NoError(t, err)

		found, err := NewSetQuantityHandler(repo).Handle(ctx, SetQuantityCommand{UserID: "u1", ProductID: "p1", Quantity: 4})
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("reports absent line without error", func(t *testing.T) {
		found, err := NewSetQuantityHandler(newRepo()).Handle(ctx, SetQuantityCommand{UserID: "u1", ProductID: "p1", Quantity: 4})
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removing an absent product is a no-op", func(t *testing.T) {
		repo := newRepo()
		_, err := NewAddItemHandler(repo).Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1")})
		require.NoError(t, err)

		removed, err := NewRemoveItemHandler(repo).Handle(ctx, RemoveItemCommand{UserID: "u1", ProductID: "p2"})
		require.NoError(t, err)
		assert.False(t, removed)

		count, err := repo.CountFor(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("removes and reports it", func(t *testing.T) {
		repo := newRepo()
		_, err := NewAddItemHandler(repo).Handle(ctx, AddItemCommand{UserID: "u1", Product: product("p1")})
		require.NoError(t, err)

		removed, err := NewRemoveItemHandler(repo).Handle(ctx, RemoveItemCommand{UserID: "u1", ProductID: "p1"})
		require.NoError(t, err)
		assert.True(t, removed)
	})
}
