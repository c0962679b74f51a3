package middleware

import (
	"torgi-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Returns the standard error format
// and logs unexpected failures server-side; callers only see a generic
// message for 5xx.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	details := map[string]interface{}{}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= 500 {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("Unhandled error")
		message = "Internal Server Error"
	}

	return response.Error(c, message, code, details)
}
