package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ActionHandler struct {
	actions usecase.ActionUsecase
	courses usecase.CourseUsecase
}

type logActionRequest struct {
	ID string `json:"id"`
}

func NewActionHandler(actions usecase.ActionUsecase, courses usecase.CourseUsecase) *ActionHandler {
	return &ActionHandler{actions: actions, courses: courses}
}

func (h *ActionHandler) Routes() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		operations.LogAction:      h.LogAction,
		operations.CompleteCourse: h.CompleteCourse,
	}
}

func (h *ActionHandler) LogAction(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req logActionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.actions.LogAction(c.Context(), userID, req.ID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", dto.NewActionResponse(res))
}

func (h *ActionHandler) CompleteCourse(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	res, err := h.courses.CompleteCourse(c.Context(), userID, c.Params("course_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", dto.CourseCompletionResponse{
		ActionResponse: dto.NewActionResponse(res.ActionResult),
		User:           dto.NewProfileResponse(res.Profile),
	})
}
