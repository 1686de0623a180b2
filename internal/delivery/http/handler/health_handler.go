package handler

import (
	"context"
	"time"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/operations"
	"skill-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	storage string
	db      Pinger
	redis   Pinger
}

// NewHealthHandler reports db and redis as "disabled" when nil.
func NewHealthHandler(storage string, db, redis Pinger) *HealthHandler {
	return &HealthHandler{storage: storage, db: db, redis: redis}
}

func (h *HealthHandler) Routes() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		operations.Health: h.Health,
	}
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := dto.HealthResponse{
		Status:   "ok",
		Storage:  h.storage,
		Database: pingStatus(ctx, h.db),
		Redis:    pingStatus(ctx, h.redis),
	}
	status := fiber.StatusOK
	if res.Database == "down" {
		res.Status = "degraded"
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, "", res)
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
