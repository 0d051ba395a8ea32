package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// NewRedis connects to the token store used for the secondary admin session
// and CSRF tokens. Returns nil when Redis is not configured or unreachable;
// the auth service degrades to primary-session-only checks in that case.
func NewRedis() *redis.Client {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, secondary session checks will be disabled")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - secondary session checks disabled", err)
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - secondary session checks disabled", err)
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
