package repository

import (
	"context"
	"time"
)

// CacheRepository - кеш результатов (cluster sets, статистика)
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
