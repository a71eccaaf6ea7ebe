package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/viewed/domain"
	"github.com/tranvu/storefront/pkg/kvstore"
	"github.com/tranvu/storefront/pkg/logger"
)

// storageKey is the fixed KV key holding the viewed log
const storageKey = "viewedProducts"

// KVViewedRepository keeps the viewed log in memory and writes it through
// to the KV store on every append, same degraded-mode contract as the
// cart repository.
type KVViewedRepository struct {
	mu      sync.Mutex
	kv      kvstore.Store
	entries []domain.ViewedEntry
	loaded  bool
}

// NewKVViewedRepository creates a viewed repository over the given KV store
func NewKVViewedRepository(kv kvstore.Store) *KVViewedRepository {
	return &KVViewedRepository{kv: kv}
}

func (r *KVViewedRepository) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	r.loaded = true

	blob, found, err := r.kv.Get(ctx, storageKey)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Viewed log unavailable, continuing in memory")
		return err
	}
	if !found {
		return nil
	}

	if err := json.Unmarshal(blob, &r.entries); err != nil {
		return fmt.Errorf("%w: corrupt viewed log: %v", kvstore.ErrUnavailable, err)
	}
	return nil
}

func (r *KVViewedRepository) persist(ctx context.Context) error {
	blob, err := json.Marshal(r.entries)
	if err != nil {
		return fmt.Errorf("%w: encode viewed log: %v", kvstore.ErrUnavailable, err)
	}
	return r.kv.Set(ctx, storageKey, blob)
}

func (r *KVViewedRepository) Record(ctx context.Context, product catalog.Product) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return false, err
	}

	for i := range r.entries {
		if r.entries[i].Product.ID == product.ID {
			// Repeat view: first-seen position is retained
			return false, nil
		}
	}

	if len(r.entries) >= domain.MaxEntries {
		r.entries = r.entries[1:]
	}
	r.entries = append(r.entries, domain.ViewedEntry{
		Product:  product,
		ViewedAt: time.Now(),
	})

	return true, r.persist(ctx)
}

func (r *KVViewedRepository) List(ctx context.Context) ([]domain.ViewedEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return nil, err
	}

	entries := make([]domain.ViewedEntry, len(r.entries))
	copy(entries, r.entries)
	return entries, nil
}
