package serverutils

import (
	"errors"

	"github.com/mbernahr/simple-eri-test-server/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler is the outermost error boundary: known fiber errors keep
// their status, anything unexpected becomes an opaque 500. The underlying
// cause is logged server-side only, never echoed to the client.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"error":  err.Error(),
			"path":   ctx.Path(),
			"method": ctx.Method(),
		})

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusInternalServerError,
			"message": "Internal server error",
		})
	}
}
