package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has been written under a key
var ErrNotFound = errors.New("key not found")

// Storage is a flat key/value namespace. Each value is an opaque serialized
// document; Set fully overwrites whatever was stored under the key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Close releases any connection held by the backend
	Close() error
}
