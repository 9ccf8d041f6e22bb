package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/database"
	"jobboard/internal/pkg/response"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := fiber.StatusOK
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	data := map[string]any{
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}
	return response.Success(c, status, response.MessageOK, data)
}
