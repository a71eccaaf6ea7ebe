package domain

import (
	"context"
	"time"

	catalog "github.com/tranvu/storefront/internal/catalog/domain"
)

// MaxEntries caps the viewed log. The source behavior is unbounded; the
// cap evicts the oldest entry on overflow and otherwise leaves first-seen
// ordering untouched.
const MaxEntries = 100

// ViewedEntry is one recorded product view. Entries keep the position of
// the first view; repeat views neither duplicate nor reorder them.
type ViewedEntry struct {
	Product  catalog.Product `json:"product"`
	ViewedAt time.Time       `json:"viewedAt"`
}

// ViewedRepository is the durable append-only view log
type ViewedRepository interface {
	// Record appends the product snapshot unless its ID is already
	// present. The boolean reports whether a new entry was written.
	Record(ctx context.Context, product catalog.Product) (bool, error)

	// List returns entries in original recording order
	List(ctx context.Context) ([]ViewedEntry, error)
}
