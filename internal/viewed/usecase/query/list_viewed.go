package query

import (
	"context"
	"fmt"

	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/viewed/domain"
)

// ListViewedQuery pages through the viewed log. Page/PageSize of zero
// return the whole log in one page.
type ListViewedQuery struct {
	Page     int
	PageSize int
}

// ViewedPage is one page of the viewed log
type ViewedPage struct {
	Entries     []domain.ViewedEntry `json:"entries"`
	HasPrevious bool                 `json:"hasPrevious"`
	HasNext     bool                 `json:"hasNext"`
}

// ListViewedHandler handles the viewed log query
type ListViewedHandler struct {
	repo domain.ViewedRepository
}

// NewListViewedHandler creates a new list viewed handler
func NewListViewedHandler(repo domain.ViewedRepository) *ListViewedHandler {
	return &ListViewedHandler{repo: repo}
}

// Handle returns entries in original recording order, paginated locally
// since the whole log lives in the durable store.
func (h *ListViewedHandler) Handle(ctx context.Context, q ListViewedQuery) (*ViewedPage, error) {
	entries, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list viewed products: %w", err)
	}

	if q.Page < 1 && q.PageSize < 1 {
		return &ViewedPage{Entries: entries}, nil
	}

	page := catalog.Paginate(entries, q.Page, q.PageSize)

	return &ViewedPage{
		Entries:     page.Items,
		HasPrevious: page.HasPrevious,
		HasNext:     page.HasNext,
	}, nil
}
