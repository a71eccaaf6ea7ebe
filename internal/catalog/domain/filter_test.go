package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Runner", BasePrice: 120, Categories: []Category{{Name: "Shoes"}}},
		{ID: "p2", Name: "Hoodie", BasePrice: 60, Categories: []Category{{Name: "Clothing"}}},
		{ID: "p3", Name: "Sandal", BasePrice: 35, Categories: []Category{{Name: "Shoes"}, {Name: "Summer"}}},
		{ID: "p4", Name: "Cap", BasePrice: 15, Categories: []Category{{Name: "Accessories"}}},
		{ID: "p5", Name: "Boot", BasePrice: 180, Categories: []Category{{Name: "Shoes"}, {Name: "Winter"}}},
	}
}

func TestFilter(t *testing.T) {
	t.Run("no constraints returns input unchanged", func(t *testing.T) {
		products := sampleProducts()
		visible := Filter(products, FilterState{})
		assert.Equal(t, products, visible)
	})

	t.Run("category matches any element of the category set", func(t *testing.T) {
		visible := Filter(sampleProducts(), FilterState{Category: "Shoes"})
		require.Len(t, visible, 3)
		assert.Equal(t, "p1", visible[0].ID)
		assert.Equal(t, "p3", visible[1].ID)
		assert.Equal(t, "p5", visible[2].ID)
	})

	t.Run("price range bounds are inclusive", func(t *testing.T) {
		visible := Filter(sampleProducts(), FilterState{
			PriceRange: &PriceRange{Min: 35, Max: 120},
		})
		require.Len(t, visible, 3)
		assert.Equal(t, "p1", visible[0].ID)
		assert.Equal(t, "p2", visible[1].ID)
		assert.Equal(t, "p3", visible[2].ID)
	})

	t.Run("filters compose by AND in input order", func(t *testing.T) {
		visible := Filter(sampleProducts(), FilterState{
			Category:   "Shoes",
			PriceRange: &PriceRange{Min: 100, Max: 200},
		})
		require.Len(t, visible, 2)
		assert.Equal(t, "p1", visible[0].ID)
		assert.Equal(t, "p5", visible[1].ID)
	})

	t.Run("min above max matches nothing", func(t *testing.T) {
		visible := Filter(sampleProducts(), FilterState{
			PriceRange: &PriceRange{Min: 500, Max: 100},
		})
		assert.Empty(t, visible)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		visible := Filter(nil, FilterState{Category: "Shoes"})
		assert.Empty(t, visible)
	})
}

func TestPaginate(t *testing.T) {
	ten := make([]Product, 10)
	for i := range ten {
		ten[i] = Product{ID: string(rune('a' + i))}
	}

	t.Run("first page", func(t *testing.T) {
		page := Paginate(ten, 1, 6)
		require.Len(t, page.Items, 6)
		assert.Equal(t, ten[0], page.Items[0])
		assert.Equal(t, ten[5], page.Items[5])
		assert.False(t, page.HasPrevious)
		assert.True(t, page.HasNext)
	})

	t.Run("partial last page", func(t *testing.T) {
		page := Paginate(ten, 2, 6)
		require.Len(t, page.Items, 4)
		assert.True(t, page.HasPrevious)
		assert.False(t, page.HasNext)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		page := Paginate(ten, 3, 6)
		assert.Empty(t, page.Items)
		assert.True(t, page.HasPrevious)
		assert.False(t, page.HasNext)
	})

	t.Run("empty input", func(t *testing.T) {
		page := Paginate[Product](nil, 1, 6)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasPrevious)
		assert.False(t, page.HasNext)
	})
}

func TestFilterState(t *testing.T) {
	t.Run("page size change resets page", func(t *testing.T) {
		state := NewFilterState()
		require.NoError(t, state.SetPage(4))

		require.NoError(t, state.SetPageSize(12))
		assert.Equal(t, 12, state.PageSize)
		assert.Equal(t, 1, state.Page)
	})

	t.Run("rejects page size outside the enumerated set", func(t *testing.T) {
		state := NewFilterState()
		assert.ErrorIs(t, state.SetPageSize(7), ErrInvalidPageSize)
	})

	t.Run("layout changes leave filters alone", func(t *testing.T) {
		state := NewFilterState()
		state.Category = "Shoes"
		require.NoError(t, state.SetGridColumns(3))
		state.ViewMode = ViewModeList

		assert.Equal(t, "Shoes", state.Category)
		assert.Equal(t, 1, state.Page)
	})

	t.Run("rejects grid columns out of range", func(t *testing.T) {
		state := NewFilterState()
		assert.ErrorIs(t, state.SetGridColumns(0), ErrInvalidGridColumns)
		assert.ErrorIs(t, state.SetGridColumns(7), ErrInvalidGridColumns)
	})

	t.Run("rejects page below 1", func(t *testing.T) {
		state := NewFilterState()
		assert.ErrorIs(t, state.SetPage(0), ErrInvalidPage)
	})
}
