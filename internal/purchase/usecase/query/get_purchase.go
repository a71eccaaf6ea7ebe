package query

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/purchase/domain"
)

// GetPurchaseQuery fetches one purchase record for the detail view
type GetPurchaseQuery struct {
	ID string
}

// GetPurchaseHandler handles the purchase detail query
type GetPurchaseHandler struct {
	purchases domain.PurchaseService
}

// NewGetPurchaseHandler creates a new get purchase handler
func NewGetPurchaseHandler(purchases domain.PurchaseService) *GetPurchaseHandler {
	return &GetPurchaseHandler{purchases: purchases}
}

// Handle fetches the purchase by id
func (h *GetPurchaseHandler) Handle(ctx context.Context, q GetPurchaseQuery) (*domain.Purchase, error) {
	if q.ID == "" {
		return nil, fmt.Errorf("purchase id is required")
	}

	purchase, err := h.purchases.Get(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return purchase, nil
}
