package query

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/cart/domain"
	"github.com/tranvu/storefront/internal/pricing"
)

// ListLinesQuery represents the cart listing query
type ListLinesQuery struct {
	UserID string
}

// CartLineView is a cart line decorated with derived prices for display
type CartLineView struct {
	domain.CartLine
	EffectivePrice float64 `json:"effectivePrice"`
	LineTotal      float64 `json:"lineTotal"`
}

// ListLinesHandler handles the cart listing query
type ListLinesHandler struct {
	repo domain.CartRepository
}

// NewListLinesHandler creates a new list lines handler
func NewListLinesHandler(repo domain.CartRepository) *ListLinesHandler {
	return &ListLinesHandler{repo: repo}
}

// Handle returns the user's cart lines in store order, each with its
// display price and line total. An empty user id is the signed-out view:
// an empty cart, not an error.
func (h *ListLinesHandler) Handle(ctx context.Context, q ListLinesQuery) ([]CartLineView, error) {
	if q.UserID == "" {
		return []CartLineView{}, nil
	}

	lines, err := h.repo.LinesFor(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	views := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		price, err := pricing.EffectivePrice(line.Product.BasePrice, line.Product.DiscountPercentage)
		if err != nil {
			return nil, fmt.Errorf("cart line %s has invalid pricing: %w", line.Product.ID, err)
		}
		total, err := pricing.LineTotal(price, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("cart line %s has invalid quantity: %w", line.Product.ID, err)
		}
		views = append(views, CartLineView{
			CartLine:       line,
			EffectivePrice: pricing.Round2(price),
			LineTotal:      pricing.Round2(total),
		})
	}
	return views, nil
}
