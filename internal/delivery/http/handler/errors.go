package handler

import (
	"errors"

	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError translates usecase sentinels into HTTP errors shared by
// every user-scoped handler.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var unknown *usecase.UnknownSkillsError
	switch {
	case errors.As(err, &unknown):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", map[string]any{"unknown_skills": unknown.IDs}, err)
	case errors.Is(err, usecase.ErrResumeTooLong):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume text too long", map[string]any{"max_length": usecase.MaxResumeLength}, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCourseNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Course not found", nil, err)
	case errors.Is(err, usecase.ErrActionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Life action not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrDuplicateAction):
		return middleware.NewAppError(fiber.StatusConflict, "Action already logged today", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrLedgerUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Ledger unavailable", map[string]any{"retryable": true}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func userIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid user_id", nil, err)
	}
	return id, nil
}
