package middleware

import (
	"errors"

	"skill-match/internal/delivery/http/operations"

	"github.com/gofiber/fiber/v3"
)

// ValidateBody checks the request body against op's input schema before the
// handler runs.
func ValidateBody(op *operations.Operation) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !op.HasInput() {
			return c.Next()
		}
		if err := op.ValidateInput(c.Body()); err != nil {
			var ve *operations.ValidationError
			if errors.As(err, &ve) {
				return NewAppError(fiber.StatusBadRequest, "Invalid request body", map[string]any{"errors": ve.Errors}, err)
			}
			return NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
		}
		return c.Next()
	}
}
