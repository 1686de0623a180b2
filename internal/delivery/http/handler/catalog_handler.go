package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

type parseResumeRequest struct {
	Text string `json:"text"`
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) Routes() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		operations.ListSkills:      h.ListSkills,
		operations.ListCourses:     h.ListCourses,
		operations.ListLifeActions: h.ListLifeActions,
		operations.ParseResume:     h.ParseResume,
	}
}

func (h *CatalogHandler) ListSkills(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponses(h.uc.ListSkills(c.Context())))
}

func (h *CatalogHandler) ListCourses(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponses(h.uc.ListCourses(c.Context())))
}

func (h *CatalogHandler) ListLifeActions(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLifeActionResponses(h.uc.LifeActions(c.Context())))
}

func (h *CatalogHandler) ParseResume(c fiber.Ctx) error {
	var req parseResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	skills, err := h.uc.ParseResume(c.Context(), req.Text)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ResumeParseResponse{Skills: skills})
}
