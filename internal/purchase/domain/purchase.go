package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidReviewNote rejects ratings outside the 1..5 star range
var ErrInvalidReviewNote = errors.New("review note must be between 1 and 5")

// Purchase is the record the backend purchase service returns. The
// storefront never stores purchases itself; it only submits and reads.
type Purchase struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	ProductID     string    `json:"productId"`
	Amount        int       `json:"amount"`
	TotalPrice    float64   `json:"totalPrice"`
	ReviewNote    int       `json:"reviewNote,omitempty"`
	ReviewComment string    `json:"reviewComment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PurchaseService is the remote purchase-submission collaborator. Failed
// submissions surface as errors; the storefront never retries them.
type PurchaseService interface {
	Create(ctx context.Context, productID string, quantity int) (*Purchase, error)
	ListForUser(ctx context.Context, userID string, page, pageSize int) ([]Purchase, error)
	Get(ctx context.Context, id string) (*Purchase, error)
	UpdateReview(ctx context.Context, id string, note int, comment string) (*Purchase, error)
}
