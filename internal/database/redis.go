package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"partner-portal-api/internal/config"
)

// NewRedis connects to Redis using the portfolio cache settings.
// Callers treat a nil client as "cache disabled", so connection
// failures are reported instead of panicking.
func NewRedis(cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	var client *redis.Client

	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     "redis:6379",
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Info("Redis connection established successfully",
		zap.Int("db", cfg.DB),
	)
	return client, nil
}
