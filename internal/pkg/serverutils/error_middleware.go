package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"intellinote-be/internal/apperror"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into the
// standard envelope. fiber.Error keeps its own status; pipeline errors are
// mapped through apperror.StatusCode.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrResponse{
				Message: "Request failed",
				Error:   fiberErr.Message,
			})
		}

		return ctx.Status(apperror.StatusCode(err)).JSON(ErrResponse{
			Message: "Request failed",
			Error:   err.Error(),
		})
	}
}
