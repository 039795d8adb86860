package database

import (
	"context"
	"log"
	"time"

	"flower-retail-backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// Redis stays nil when no REDIS_ADDR is configured; callers must check.
var Redis *redis.Client

func InitRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx := context.Background()
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Printf("Redis connected: %s", pong)

	Redis = rdb
}
