package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/storefront/internal/catalog/domain"
)

func stateFor(t *testing.T, rawQuery string) (domain.FilterState, error) {
	t.Helper()
	return filterStateFromQuery(httptest.NewRequest("GET", "/api/catalog?"+rawQuery, nil))
}

func TestFilterStateFromQuery(t *testing.T) {
	t.Run("defaults when nothing is set", func(t *testing.T) {
		state, err := stateFor(t, "")
		require.NoError(t, err)
		assert.Equal(t, domain.NewFilterState(), state)
	})

	t.Run("parses filters and layout", func(t *testing.T) {
		state, err := stateFor(t, "search=shoe&category=Shoes&minPrice=10&maxPrice=99.5&pageSize=12&page=3&view=list&columns=2")
		require.NoError(t, err)

		assert.Equal(t, "shoe", state.SearchText)
		assert.Equal(t, "Shoes", state.Category)
		require.NotNil(t, state.PriceRange)
		assert.Equal(t, 10.0, state.PriceRange.Min)
		assert.Equal(t, 99.5, state.PriceRange.Max)
		assert.Equal(t, 12, state.PageSize)
		assert.Equal(t, 3, state.Page)
		assert.Equal(t, domain.ViewModeList, state.ViewMode)
		assert.Equal(t, 2, state.GridColumns)
	})

	t.Run("page survives a page size change", func(t *testing.T) {
		// SetPageSize resets the page, so the explicit page parameter must
		// be applied afterwards
		state, err := stateFor(t, "pageSize=8&page=2")
		require.NoError(t, err)
		assert.Equal(t, 2, state.Page)
	})

	t.Run("rejects a page size outside the allowed set", func(t *testing.T) {
		_, err := stateFor(t, "pageSize=7")
		assert.ErrorIs(t, err, domain.ErrInvalidPageSize)
	})

	t.Run("rejects page zero", func(t *testing.T) {
		_, err := stateFor(t, "page=0")
		assert.ErrorIs(t, err, domain.ErrInvalidPage)
	})

	t.Run("rejects an unknown view mode", func(t *testing.T) {
		_, err := stateFor(t, "view=mosaic")
		assert.Error(t, err)
	})

	t.Run("min only leaves the upper bound open", func(t *testing.T) {
		state, err := stateFor(t, "minPrice=50")
		require.NoError(t, err)
		require.NotNil(t, state.PriceRange)
		assert.Equal(t, 50.0, state.PriceRange.Min)
		assert.Greater(t, state.PriceRange.Max, 1e9)
	})
}
