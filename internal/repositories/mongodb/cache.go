package mongodb

import (
	"context"
	"time"
)

// CacheService is the subset of the Redis wrapper the repositories use.
// A nil cache disables caching without changing repository behavior.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}
