package db

import (
	"github.com/redis/go-redis/v9"

	"github.com/rsempe/tracemyride/internal/config"
)

// ConnectRedis is optional infrastructure: without an address the service
// runs single-instance with in-memory fan-out and caching only.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
