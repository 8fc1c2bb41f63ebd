package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
)

// NewRedisClient connects and pings once at startup so a bad Redis address
// fails fast instead of at the first request.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
