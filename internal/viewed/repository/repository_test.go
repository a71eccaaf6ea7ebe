package repository

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/viewed/domain"
	"github.com/tranvu/storefront/pkg/kvstore"
)

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("viewing twice records once, first-seen position kept", func(t *testing.T) {
		repo := NewKVViewedRepository(kvstore.NewMemoryStore())

		recorded, err := repo.Record(ctx, catalog.Product{ID: "P1", Name: "First"})
		require.NoError(t, err)
		assert.True(t, recorded)

		recorded, err = repo.Record(ctx, catalog.Product{ID: "P2", Name: "Second"})
		require.NoError(t, err)
		assert.True(t, recorded)

		recorded, err = repo.Record(ctx, catalog.Product{ID: "P1", Name: "First again"})
		require.NoError(t, err)
		assert.False(t, recorded)

		entries, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "P1", entries[0].Product.ID)
		assert.Equal(t, "First", entries[0].Product.Name)
		assert.Equal(t, "P2", entries[1].Product.ID)
	})

	t.Run("evicts the oldest entry once the cap is reached", func(t *testing.T) {
		repo := NewKVViewedRepository(kvstore.NewMemoryStore())

		for i := 0; i < domain.MaxEntries; i++ {
			_, err := repo.Record(ctx, catalog.Product{ID: "p" + strconv.Itoa(i)})
			require.NoError(t, err)
		}

		_, err := repo.Record(ctx, catalog.Product{ID: "overflow"})
		require.NoError(t, err)

		entries, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, domain.MaxEntries)
		assert.Equal(t, "p1", entries[0].Product.ID)
		assert.Equal(t, "overflow", entries[len(entries)-1].Product.ID)
	})

	t.Run("hydrates from a previously persisted log", func(t *testing.T) {
		kv := kvstore.NewMemoryStore()
		first := NewKVViewedRepository(kv)
		_, err := first.Record(ctx, catalog.Product{ID: "P1"})
		require.NoError(t, err)

		second := NewKVViewedRepository(kv)
		recorded, err := second.Record(ctx, catalog.Product{ID: "P1"})
		require.NoError(t, err)
		assert.False(t, recorded)
	})
}
