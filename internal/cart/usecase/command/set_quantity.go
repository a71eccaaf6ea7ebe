package command

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/cart/domain"
)

// SetQuantityCommand replaces the quantity on an existing cart line.
// Quantity zero or below is rejected: removal is a distinct operation,
// never an implicit side effect of a quantity update.
type SetQuantityCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// SetQuantityHandler handles the quantity update command
type SetQuantityHandler struct {
	repo domain.CartRepository
}

// NewSetQuantityHandler creates a new set quantity handler
func NewSetQuantityHandler(repo domain.CartRepository) *SetQuantityHandler {
	return &SetQuantityHandler{repo: repo}
}

// Handle updates the line quantity; the boolean reports whether the line
// existed.
func (h *SetQuantityHandler) Handle(ctx context.Context, cmd SetQuantityCommand) (bool, error) {
	if cmd.UserID == "" {
		return false, fmt.Errorf("user id is required")
	}
	if cmd.ProductID == "" {
		return false, fmt.Errorf("product id is required")
	}
	if cmd.Quantity <= 0 {
		return false, domain.ErrInvalidQuantity
	}

	return h.repo.SetQuantity(ctx, cmd.UserID, cmd.ProductID, cmd.Quantity)
}
