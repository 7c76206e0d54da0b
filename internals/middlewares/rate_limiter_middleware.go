package middlewares

import (
	"time"

	helper "hallticket_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func limitBy(max int, exp time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Limits: Disabled=true mematikan semua limiter (test / batch import).
type Limits struct {
	Disabled bool
}

func (l Limits) pick(h func() fiber.Handler) fiber.Handler {
	if l.Disabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return h()
}

// Global limiter: untuk semua endpoint biasa
func (l Limits) Global() fiber.Handler {
	return l.pick(func() fiber.Handler {
		return limitBy(100, 1*time.Minute, "Too many requests. Please try again later.")
	})
}

// Rate limiter untuk login route (lebih ketat)
func (l Limits) Login() fiber.Handler {
	return l.pick(func() fiber.Handler {
		return limitBy(5, 1*time.Minute, "Too many login attempts. Please try again in a moment.")
	})
}

// Rate limiter untuk submit formulir publik
func (l Limits) Submit() fiber.Handler {
	return l.pick(func() fiber.Handler {
		return limitBy(5, 5*time.Minute, "Too many submissions. Please wait a few minutes.")
	})
}

// Rate limiter untuk upload file
func (l Limits) Upload() fiber.Handler {
	return l.pick(func() fiber.Handler {
		return limitBy(20, 5*time.Minute, "Too many uploads. Please wait a few minutes.")
	})
}
