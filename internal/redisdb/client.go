package redisdb

import (
	"github.com/redis/go-redis/v9"

	"scholar-ai/internal/config"
)

// NewClient builds the redis client used for short-lived scrape caching.
// Returns nil when no address is configured; callers treat a nil client
// as "no cache".
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
