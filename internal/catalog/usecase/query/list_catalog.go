package query

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/pricing"
)

// ListCatalogQuery represents the query for one catalog page
type ListCatalogQuery struct {
	State domain.FilterState
}

// CatalogItem is a visible product decorated with its display price
type CatalogItem struct {
	domain.Product
	EffectivePrice float64 `json:"effectivePrice"`
}

// CatalogView is the shopper-facing result: the visible subset of the
// fetched page plus the layout state needed to render it.
type CatalogView struct {
	Items       []CatalogItem   `json:"items"`
	Count       int             `json:"count"`
	HasPrevious bool            `json:"hasPrevious"`
	HasNext     bool            `json:"hasNext"`
	ViewMode    domain.ViewMode `json:"viewMode"`
	GridColumns int             `json:"gridColumns"`
}

// ListCatalogHandler handles the catalog listing query
type ListCatalogHandler struct {
	listing domain.ListingSource
}

// NewListCatalogHandler creates a new list catalog handler
func NewListCatalogHandler(listing domain.ListingSource) *ListCatalogHandler {
	return &ListCatalogHandler{listing: listing}
}

// Handle fetches the requested page from the listing source and narrows it
// with the in-memory filter state. Search and server-side paging happen at
// the source; category and price-range filtering happen here.
func (h *ListCatalogHandler) Handle(ctx context.Context, q ListCatalogQuery) (*CatalogView, error) {
	state := q.State
	if state.Page < 1 {
		state.Page = 1
	}
	if state.PageSize < 1 {
		state.PageSize = domain.PageSizes[0]
	}

	fetched, err := h.listing.FetchProducts(ctx, state.SearchText, state.Page, state.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	visible := domain.Filter(fetched, state)

	items := make([]CatalogItem, 0, len(visible))
	for _, p := range visible {
		price, err := pricing.DisplayPrice(p.BasePrice, p.DiscountPercentage)
		if err != nil {
			return nil, fmt.Errorf("product %s has invalid pricing: %w", p.ID, err)
		}
		items = append(items, CatalogItem{Product: p, EffectivePrice: price})
	}

	return &CatalogView{
		Items:       items,
		Count:       len(items),
		HasPrevious: state.Page > 1,
		// A full fetched page means the source may have more
		HasNext:     len(fetched) == state.PageSize,
		ViewMode:    state.ViewMode,
		GridColumns: state.GridColumns,
	}, nil
}
