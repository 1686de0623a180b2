package handler

import (
	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	users  usecase.UserUsecase
	skills usecase.UserSkillUsecase
}

type updateProfileRequest struct {
	CareerGoal string `json:"career_goal"`
}

type updateSkillsRequest struct {
	Skills  []string `json:"skills"`
	Replace bool     `json:"replace"`
}

func NewUserHandler(users usecase.UserUsecase, skills usecase.UserSkillUsecase) *UserHandler {
	return &UserHandler{users: users, skills: skills}
}

func (h *UserHandler) Routes() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		operations.GetProfile:    h.GetProfile,
		operations.UpdateProfile: h.UpdateProfile,
		operations.UpdateSkills:  h.UpdateSkills,
	}
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	p, err := h.users.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.users.UpdateCareerGoal(c.Context(), userID, req.CareerGoal)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *UserHandler) UpdateSkills(c fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req updateSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.skills.UpdateSkills(c.Context(), userID, usecase.UpdateSkillsInput{
		Skills:  req.Skills,
		Replace: req.Replace,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}
