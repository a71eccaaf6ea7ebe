package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/storefront/internal/catalog/domain"
)

type stubListing struct {
	products   []domain.Product
	categories []domain.Category
	err        error

	lastSearch   string
	lastPage     int
	lastPageSize int
}

func (s *stubListing) FetchProducts(_ context.Context, searchText string, page, pageSize int) ([]domain.Product, error) {
	s.lastSearch = searchText
	s.lastPage = page
	s.lastPageSize = pageSize
	return s.products, s.err
}

func (s *stubListing) FetchProductByURLName(_ context.Context, urlName string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].URLName == urlName {
			return &s.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (s *stubListing) FetchCategories(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func TestListCatalog(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "A", URLName: "a", BasePrice: 100, DiscountPercentage: 10, Categories: []domain.Category{{Name: "Shoes"}}},
		{ID: "2", Name: "B", URLName: "b", BasePrice: 300, DiscountPercentage: 0, Categories: []domain.Category{{Name: "Bags"}}},
	}

	t.Run("decorates visible products with display price", func(t *testing.T) {
		listing := &stubListing{products: products}
		handler := NewListCatalogHandler(listing)

		state := domain.NewFilterState()
		view, err := handler.Handle(context.Background(), ListCatalogQuery{State: state})

		require.NoError(t, err)
		require.Len(t, view.Items, 2)
		assert.InDelta(t, 90.00, view.Items[0].EffectivePrice, 1e-9)
		assert.InDelta(t, 300.00, view.Items[1].EffectivePrice, 1e-9)
		assert.Equal(t, 2, view.Count)
		assert.False(t, view.HasPrevious)
	})

	t.Run("applies filter state to the fetched page", func(t *testing.T) {
		listing := &stubListing{products: products}
		handler := NewListCatalogHandler(listing)

		state := domain.NewFilterState()
		state.Category = "Shoes"
		view, err := handler.Handle(context.Background(), ListCatalogQuery{State: state})

		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "1", view.Items[0].ID)
	})

	t.Run("passes search and paging to the listing source", func(t *testing.T) {
		listing := &stubListing{products: products}
		handler := NewListCatalogHandler(listing)

		state := domain.NewFilterState()
		state.SearchText = "run"
		require.NoError(t, state.SetPageSize(12))
		require.NoError(t, state.SetPage(2))

		_, err := handler.Handle(context.Background(), ListCatalogQuery{State: state})

		require.NoError(t, err)
		assert.Equal(t, "run", listing.lastSearch)
		assert.Equal(t, 2, listing.lastPage)
		assert.Equal(t, 12, listing.lastPageSize)
	})

	t.Run("surfaces listing errors", func(t *testing.T) {
		listing := &stubListing{err: errors.New("backend down")}
		handler := NewListCatalogHandler(listing)

		_, err := handler.Handle(context.Background(), ListCatalogQuery{State: domain.NewFilterState()})
		assert.Error(t, err)
	})
}

func TestGetProduct(t *testing.T) {
	listing := &stubListing{products: []domain.Product{
		{ID: "1", Name: "A", URLName: "a", BasePrice: 100, DiscountPercentage: 10},
	}}
	handler := NewGetProductHandler(listing)

	t.Run("returns detail with display price", func(t *testing.T) {
		detail, err := handler.Handle(context.Background(), GetProductQuery{URLName: "a"})
		require.NoError(t, err)
		assert.Equal(t, "1", detail.ID)
		assert.InDelta(t, 90.00, detail.EffectivePrice, 1e-9)
	})

	t.Run("requires a url name", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), GetProductQuery{})
		assert.Error(t, err)
	})
}
