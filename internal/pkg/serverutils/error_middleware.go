package serverutils

import (
	"errors"

	"retail-assistant-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors to HTTP responses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, entity.ErrSessionNotFound),
			errors.Is(err, entity.ErrCustomerNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, entity.ErrDuplicateIdentification):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, entity.ErrDirectoryUnavailable),
			errors.Is(err, entity.ErrRetrievalUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, entity.ErrGenerationFailure):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
		}
	}
}
