package query

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/cart/domain"
)

// CountLinesQuery represents the cart badge count query
type CountLinesQuery struct {
	UserID string
}

// CountLinesHandler handles the cart count query
type CountLinesHandler struct {
	repo domain.CartRepository
}

// NewCountLinesHandler creates a new count lines handler
func NewCountLinesHandler(repo domain.CartRepository) *CountLinesHandler {
	return &CountLinesHandler{repo: repo}
}

// Handle returns the user's distinct line count. The count reflects every
// prior mutation immediately; no identity means zero.
func (h *CountLinesHandler) Handle(ctx context.Context, q CountLinesQuery) (int, error) {
	if q.UserID == "" {
		return 0, nil
	}

	count, err := h.repo.CountFor(ctx, q.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart lines: %w", err)
	}
	return count, nil
}
