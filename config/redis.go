package config

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis backs the logout token denylist. Nil when REDIS_ADDR is unset, in
// which case logout is a client-side concern only.
var Redis *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, token denylist disabled")
		return
	}

	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Warning: Failed to connect to Redis, token denylist disabled: %v", err)
		return
	}

	Redis = client
	log.Println("Redis connected successfully")
}
