package command

import (
	"context"
	"fmt"

	"github.com/tranvu/storefront/internal/cart/domain"
	catalog "github.com/tranvu/storefront/internal/catalog/domain"
)

// AddItemCommand represents the add-to-cart command. Quantity defaults to 1
// when left at zero; the stock ceiling is a presentation-layer check and is
// not enforced here.
type AddItemCommand struct {
	UserID   string
	Product  catalog.Product
	Quantity int
}

// AddItemHandler handles the add-to-cart command
type AddItemHandler struct {
	repo domain.CartRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(repo domain.CartRepository) *AddItemHandler {
	return &AddItemHandler{repo: repo}
}

// Handle merges the product into the user's cart and returns the user's
// distinct line count after the mutation.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (int, error) {
	if cmd.UserID == "" {
		return 0, fmt.Errorf("user id is required")
	}
	if cmd.Product.ID == "" {
		return 0, fmt.Errorf("product id is required")
	}
	if cmd.Quantity == 0 {
		cmd.Quantity = 1
	}
	if cmd.Quantity < 1 {
		return 0, domain.ErrInvalidQuantity
	}

	return h.repo.AddOrMerge(ctx, domain.CartLine{
		UserID:   cmd.UserID,
		Product:  cmd.Product,
		Quantity: cmd.Quantity,
	})
}
