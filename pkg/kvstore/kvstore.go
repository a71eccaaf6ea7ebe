package kvstore

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the durable backend cannot be reached.
// Callers keep their in-memory state and surface the error; writes are not retried.
var ErrUnavailable = errors.New("kv store unavailable")

// Store is the durable key-value port the storefront persists through:
// whole JSON blobs under fixed keys. Concurrent writers from other instances
// are not coordinated; the last write wins.
type Store interface {
	// Get returns the blob stored under key. The second result reports
	// whether the key exists; a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the blob under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
