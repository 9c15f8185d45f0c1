// Package cache defines the port for short-lived lookup caches.
package cache

import (
	"context"
	"time"
)

// Cache stores encoded values under string keys. A miss is reported with
// ok=false and a nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
