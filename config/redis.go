package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to the Redis instance pointed at by REDIS_URL.
// A nil client is returned (with the error) when Redis is unreachable;
// the room store degrades to its in-memory fallback in that case, so
// callers should log and continue rather than abort.
func ConnectRedis() (*redis.Client, error) {
	redisUri := os.Getenv("REDIS_URL")
	if redisUri == "" {
		redisUri = "localhost:6379"
	}

	var client *redis.Client
	if opt, err := redis.ParseURL(redisUri); err == nil {
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisUri})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Println("Redis connection established")
	return client, nil
}
