package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tranvu/storefront/internal/cart/domain"
	"github.com/tranvu/storefront/pkg/kvstore"
	"github.com/tranvu/storefront/pkg/logger"
)

// storageKey is the fixed KV key holding the whole cart list
const storageKey = "cart"

// KVCartRepository keeps the shared cart list in memory and writes the
// whole list through to the KV store after every mutation. When the
// backend is unavailable the in-memory list remains authoritative for the
// rest of the session and each failed write surfaces its error.
type KVCartRepository struct {
	mu     sync.Mutex
	kv     kvstore.Store
	lines  []domain.CartLine
	loaded bool
}

// NewKVCartRepository creates a cart repository over the given KV store
func NewKVCartRepository(kv kvstore.Store) *KVCartRepository {
	return &KVCartRepository{kv: kv}
}

// load hydrates the in-memory list on first access. A read failure leaves
// the session running on an empty in-memory cart and surfaces the error.
func (r *KVCartRepository) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	r.loaded = true

	blob, found, err := r.kv.Get(ctx, storageKey)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Cart store unavailable, continuing in memory")
		return err
	}
	if !found {
		// First access: the store starts empty
		return nil
	}

	if err := json.Unmarshal(blob, &r.lines); err != nil {
		return fmt.Errorf("%w: corrupt cart blob: %v", kvstore.ErrUnavailable, err)
	}
	return nil
}

// persist writes the full store synchronously. The caller already applied
// the mutation in memory; a failure here is reported, not rolled back.
func (r *KVCartRepository) persist(ctx context.Context) error {
	blob, err := json.Marshal(r.lines)
	if err != nil {
		return fmt.Errorf("%w: encode cart: %v", kvstore.ErrUnavailable, err)
	}
	return r.kv.Set(ctx, storageKey, blob)
}

func (r *KVCartRepository) countForLocked(userID string) int {
	count := 0
	for i := range r.lines {
		if r.lines[i].UserID == userID {
			count++
		}
	}
	return count
}

func (r *KVCartRepository) AddOrMerge(ctx context.Context, line domain.CartLine) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loadErr := r.load(ctx)

	merged := false
	for i := range r.lines {
		if r.lines[i].UserID == line.UserID && r.lines[i].Product.ID == line.Product.ID {
			r.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		r.lines = append(r.lines, line)
	}

	if loadErr != nil {
		// The mutation stays in memory, but an unhydrated list must not
		// overwrite the durable blob
		return r.countForLocked(line.UserID), loadErr
	}
	return r.countForLocked(line.UserID), r.persist(ctx)
}

func (r *KVCartRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loadErr := r.load(ctx)

	for i := range r.lines {
		if r.lines[i].UserID == userID && r.lines[i].Product.ID == productID {
			r.lines[i].Quantity = quantity
			if loadErr != nil {
				return true, loadErr
			}
			return true, r.persist(ctx)
		}
	}
	return false, loadErr
}

func (r *KVCartRepository) Remove(ctx context.Context, userID, productID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loadErr := r.load(ctx)

	for i := range r.lines {
		if r.lines[i].UserID == userID && r.lines[i].Product.ID == productID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			if loadErr != nil {
				return true, loadErr
			}
			return true, r.persist(ctx)
		}
	}
	return false, loadErr
}

func (r *KVCartRepository) LinesFor(ctx context.Context, userID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	projection := make([]domain.CartLine, 0)
	for i := range r.lines {
		if r.lines[i].UserID == userID {
			projection = append(projection, r.lines[i])
		}
	}
	return projection, nil
}

func (r *KVCartRepository) CountFor(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return 0, err
	}
	return r.countForLocked(userID), nil
}
