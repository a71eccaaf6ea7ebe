package command

import (
	"context"
	"fmt"

	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/viewed/domain"
)

// RecordViewCommand records a product detail view
type RecordViewCommand struct {
	Product catalog.Product
}

// RecordViewHandler handles the record-view command
type RecordViewHandler struct {
	repo domain.ViewedRepository
}

// NewRecordViewHandler creates a new record view handler
func NewRecordViewHandler(repo domain.ViewedRepository) *RecordViewHandler {
	return &RecordViewHandler{repo: repo}
}

// Handle appends the product to the viewed log; a repeat view is a no-op.
// The boolean reports whether a new entry was recorded.
func (h *RecordViewHandler) Handle(ctx context.Context, cmd RecordViewCommand) (bool, error) {
	if cmd.Product.ID == "" {
		return false, fmt.Errorf("product id is required")
	}
	return h.repo.Record(ctx, cmd.Product)
}
