package handlers

import (
	"context"
	"time"

	"founderflow/internal/database"
	"founderflow/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	db    *database.MongoDB
	redis *services.RedisService
	start time.Time
}

// NewHealthHandler creates a new health handler. redis may be nil.
func NewHealthHandler(db *database.MongoDB, redis *services.RedisService) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
		start: time.Now(),
	}
}

// Health returns service health and dependency reachability
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "ok"
	if err := h.db.Ping(ctx); err != nil {
		mongoStatus = "unreachable"
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "ok"
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "unreachable"
		}
	}

	status := fiber.StatusOK
	if mongoStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  mongoStatus,
		"mongodb": mongoStatus,
		"redis":   redisStatus,
		"uptime":  time.Since(h.start).Round(time.Second).String(),
	})
}
