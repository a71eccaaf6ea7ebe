package domain

import (
	"context"
	"errors"

	catalog "github.com/tranvu/storefront/internal/catalog/domain"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartLine is one (user, product) pairing with a quantity. The embedded
// product is a snapshot from the moment of the add, not a live reference.
type CartLine struct {
	UserID   string          `json:"userId"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Key identifies a line inside the shared store
func (l *CartLine) Key() (userID, productID string) {
	return l.UserID, l.Product.ID
}

// CartRepository is the cart store contract. The store is one shared,
// durable, ordered list of lines for all users; per-user views are
// filtered projections of it, never independent copies.
//
// Mutations persist synchronously. When the durable backend fails the
// in-memory state still applies and the wrapped kvstore.ErrUnavailable is
// returned alongside the result; the store never retries on its own.
type CartRepository interface {
	// AddOrMerge inserts the line, or increments the quantity of the
	// existing line with the same (user, product) key. Returns the user's
	// distinct line count after the mutation.
	AddOrMerge(ctx context.Context, line CartLine) (int, error)

	// SetQuantity replaces the quantity on the matching line. The boolean
	// reports whether the line existed; absence is not an error.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error)

	// Remove deletes the matching line and reports whether a deletion
	// occurred.
	Remove(ctx context.Context, userID, productID string) (bool, error)

	// LinesFor returns the user's lines in insertion order of the shared
	// store.
	LinesFor(ctx context.Context, userID string) ([]CartLine, error)

	// CountFor returns the user's distinct line count
	CountFor(ctx context.Context, userID string) (int, error)
}
