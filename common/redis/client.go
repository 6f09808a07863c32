package redis

import (
	"context"

	"github.com/gabrielwysoczanski31/aurora-sub001/common/config"

	"github.com/go-redis/redis/v8"
)

// Client is the go-redis client type used across the service.
type Client = redis.Client

// NewRedisClient creates a client from cfg without connecting.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping checks connectivity.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// Close closes the client.
func Close(client *redis.Client) error {
	return client.Close()
}
