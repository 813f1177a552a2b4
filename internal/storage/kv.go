package storage

import "context"

// KV is the backing store: a flat namespace of string keys holding opaque
// JSON payloads. The record store only ever uses two keys, one per durable
// collection.
type KV interface {
	// Get returns the payload for key and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set durably replaces the payload for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
