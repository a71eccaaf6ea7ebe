package command

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/cart/domain"
)

// RemoveItemCommand removes one line from the user's cart
type RemoveItemCommand struct {
	UserID    string
	ProductID string
}

// RemoveItemHandler handles the remove-from-cart command
type RemoveItemHandler struct {
	repo domain.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(repo domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{repo: repo}
}

// Handle deletes the matching line. The boolean distinguishes "removed"
// from "was already absent" so callers can word their feedback.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (bool, error) {
	if cmd.UserID == "" {
		return false, fmt.Errorf("user id is required")
	}
	if cmd.ProductID == "" {
		return false, fmt.Errorf("product id is required")
	}

	return h.repo.Remove(ctx, cmd.UserID, cmd.ProductID)
}
