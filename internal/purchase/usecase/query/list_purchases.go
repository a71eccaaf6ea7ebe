package query

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/purchase/domain"
)

// ListPurchasesQuery pages through the user's purchase history
type ListPurchasesQuery struct {
	UserID   string
	Page     int
	PageSize int
}

// ListPurchasesHandler handles the purchase history query
type ListPurchasesHandler struct {
	purchases domain.PurchaseService
}

// NewListPurchasesHandler creates a new list purchases handler
func NewListPurchasesHandler(purchases domain.PurchaseService) *ListPurchasesHandler {
	return &ListPurchasesHandler{purchases: purchases}
}

// Handle lists the user's purchases; no identity means an empty history
func (h *ListPurchasesHandler) Handle(ctx context.Context, q ListPurchasesQuery) ([]domain.Purchase, error) {
	if q.UserID == "" {
		return []domain.Purchase{}, nil
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}

	purchases, err := h.purchases.ListForUser(ctx, q.UserID, q.Page, q.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}
