package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobListUsecase
}

func NewJobsHandler(uc usecase.JobListUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) Routes() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		operations.ListJobs: h.List,
		operations.GetJob:   h.Get,
	}
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListJobs(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobMatchResponses(items))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	m, err := h.uc.GetJob(c.Context(), userID, c.Params("job_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobMatchResponse(m))
}
