package command

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/purchase/domain"
)

// UpdateReviewCommand rates a past purchase from the history page. The
// note is a 1..5 star rating; the comment may be empty.
type UpdateReviewCommand struct {
	ID      string
	Note    int
	Comment string
}

// UpdateReviewHandler handles the review update command
type UpdateReviewHandler struct {
	purchases domain.PurchaseService
}

// NewUpdateReviewHandler creates a new update review handler
func NewUpdateReviewHandler(purchases domain.PurchaseService) *UpdateReviewHandler {
	return &UpdateReviewHandler{purchases: purchases}
}

// Handle submits the review to the backend; failures surface unchanged
func (h *UpdateReviewHandler) Handle(ctx context.Context, cmd UpdateReviewCommand) (*domain.Purchase, error) {
	if cmd.ID == "" {
		return nil, fmt.Errorf("purchase id is required")
	}
	if cmd.Note < 1 || cmd.Note > 5 {
		return nil, domain.ErrInvalidReviewNote
	}

	purchase, err := h.purchases.UpdateReview(ctx, cmd.ID, cmd.Note, cmd.Comment)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return purchase, nil
}
