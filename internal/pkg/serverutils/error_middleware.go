package serverutils

import (
	"errors"

	"lexi-chat-be/internal/dto"
	"lexi-chat-be/internal/service"
	"lexi-chat-be/pkg/document"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed service errors escaping a handler
// into the JSON error envelope. Handlers may also map errors themselves when
// they need richer payloads.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"code":    fiber.StatusTooManyRequests,
				"error":   limitErr.Error(),
				"limit":   limitErr.Limit,
				"used":    limitErr.Used,
				"date":    limitErr.Date,
			})
		}

		var busyErr *service.BusyError
		if errors.As(err, &busyErr) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, busyErr.Error()))
		}

		var unsupportedErr *document.UnsupportedFileTypeError
		if errors.As(err, &unsupportedErr) {
			return ctx.Status(fiber.StatusUnsupportedMediaType).JSON(
				ErrorResponseWithDetails(fiber.StatusUnsupportedMediaType, "Failed to parse document", unsupportedErr.MimeType))
		}

		var collabErr *service.CollaboratorError
		if errors.As(err, &collabErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, "Failed to get AI response. Please try again."))
		}

		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
