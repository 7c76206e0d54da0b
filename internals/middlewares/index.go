package middlewares

import (
	"errors"
	"log"
	"time"

	helper "hallticket_backend/internals/helpers"
	"hallticket_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares: urutan request-id → logger → recover → cors.
func SetupMiddlewares(app *fiber.App, allowOrigins string, requestTimeout time.Duration) {
	app.Use(RequestIDMiddleware(requestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware(allowOrigins))
}

// ErrorHandler: semua error yang lolos dari handler tetap memakai envelope JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] unhandled %s %s: %v", c.Method(), c.Path(), err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}
