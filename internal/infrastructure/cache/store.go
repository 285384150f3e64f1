package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Store is the key-value abstraction used for OTP codes, sessions, and
// short-lived analytics caching. Backed by Redis in production and by
// MemoryStore in tests.
type Store interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string, expiration time.Duration) (int64, error)
}
