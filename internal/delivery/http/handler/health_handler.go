package handler

import (
	"context"

	"jobdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Live always succeeds while the process is up. Ready checks the backing
// stores; Redis being down degrades features but does not fail readiness.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"status": "alive"})
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	checks := map[string]string{"database": "ok", "cache": "ok"}
	status := fiber.StatusOK

	if h.db == nil || h.db.Ping(c.Context()) != nil {
		checks["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		checks["cache"] = "degraded"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "Service unavailable", checks)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, checks)
}
