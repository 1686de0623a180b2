package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/domain/ledger"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"
	ucauth "skill-match/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc     usecase.AuthUsecase
	badges ledger.BadgeTable
}

type loginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewAuthHandler(uc usecase.AuthUsecase, badges ledger.BadgeTable) *AuthHandler {
	return &AuthHandler{uc: uc, badges: badges}
}

func (h *AuthHandler) Routes() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		operations.Login:   h.Login,
		operations.Refresh: h.Refresh,
	}
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Name: req.Name, Email: req.Email})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, "", dto.LoginResponse{
		User:         dto.NewUserResponse(res.User, h.badges.Level(res.User.LifePoints)),
		Created:      res.Created,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrLedgerUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Ledger unavailable", map[string]any{"retryable": true}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
