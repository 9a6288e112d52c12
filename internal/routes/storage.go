package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/redis/v3"
)

// LimiterStorage returns a Redis-backed store for rate-limit counters so
// every replica shares them. An empty URL yields nil (in-memory counters).
func LimiterStorage(redisURL string) fiber.Storage {
	if redisURL == "" {
		return nil
	}
	return redis.New(redis.Config{URL: redisURL})
}
