package repository

import (
	"context"
	"time"
)

// CacheRepository определяет счетчики с TTL в кеше (Redis) для ограничения частоты
type CacheRepository interface {
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}
