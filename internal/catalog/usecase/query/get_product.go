package query

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/pricing"
)

// GetProductQuery represents the product detail query
type GetProductQuery struct {
	URLName string
}

// ProductDetail is a product with its derived display price
type ProductDetail struct {
	domain.Product
	EffectivePrice float64 `json:"effectivePrice"`
}

// GetProductHandler handles the product detail query
type GetProductHandler struct {
	listing domain.ListingSource
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(listing domain.ListingSource) *GetProductHandler {
	return &GetProductHandler{listing: listing}
}

// Handle fetches one product and derives its display price
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*ProductDetail, error) {
	if q.URLName == "" {
		return nil, fmt.Errorf("product url name is required")
	}

	product, err := h.listing.FetchProductByURLName(ctx, q.URLName)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	price, err := pricing.DisplayPrice(product.BasePrice, product.DiscountPercentage)
	if err != nil {
		return nil, fmt.Errorf("product %s has invalid pricing: %w", product.ID, err)
	}

	return &ProductDetail{Product: *product, EffectivePrice: price}, nil
}
