package kv

import "context"

// Store describes the durable string key/value contract backing local
// persistence. All operations may fail with an I/O error; failures are
// returned explicitly, never swallowed at this layer.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
