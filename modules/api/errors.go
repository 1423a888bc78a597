package api

import (
	"errors"

	domain "github.com/example/task-list-service/domain/task"
	"github.com/gofiber/fiber/v2"
)

// Error codes returned in ErrorResponse.
const (
	ErrorCodeNotFound = "TODO_NOT_FOUND"
	ErrorCodeInternal = "INTERNAL_ERROR"
)

const internalErrorDetail = "Internal server error occurred"

// writeError maps lifecycle failures to their HTTP response. Anything it
// does not recognise is returned for the central error handler.
func writeError(c *fiber.Ctx, err error) error {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		code := ErrorCodeNotFound
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Detail:    notFound.Error(),
			ErrorCode: &code,
		})
	}

	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		return validationFailed(c, invalid.Message)
	}

	return err
}

func validationFailed(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Detail: detail,
	})
}

// errorHandler handles errors globally. Internal details are logged and
// never returned to the client.
func (m *APIModule) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(ErrorResponse{Detail: fe.Message})
	}

	m.logger.Error("Unhandled request error",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals(requestIDKey),
		"error", err)

	code := ErrorCodeInternal
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Detail:    internalErrorDetail,
		ErrorCode: &code,
	})
}
