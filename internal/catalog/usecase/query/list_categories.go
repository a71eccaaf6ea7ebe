package query

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/catalog/domain"
)

// ListCategoriesQuery represents the category listing query
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles the category listing query
type ListCategoriesHandler struct {
	listing domain.ListingSource
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(listing domain.ListingSource) *ListCategoriesHandler {
	return &ListCategoriesHandler{listing: listing}
}

// Handle fetches the categories offered by the category filter
func (h *ListCategoriesHandler) Handle(ctx context.Context, _ ListCategoriesQuery) ([]domain.Category, error) {
	categories, err := h.listing.FetchCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
