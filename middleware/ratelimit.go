package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

// RateLimit allows max requests per caller IP and route within window.
func RateLimit(store *cache.Cache, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ratelimit:" + c.Path() + ":" + c.IP()
		if err := store.Add(key, 1, window); err != nil {
			count, err := store.IncrementInt(key, 1)
			if err == nil && count > max {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"success": false,
					"data":    fiber.Map{"message": "Too many requests, please try again later"},
				})
			}
		}
		return c.Next()
	}
}
