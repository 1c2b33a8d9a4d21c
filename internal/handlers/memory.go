package handlers

import (
	"context"
	"log"
	"strconv"
	"strings"

	"founderflow/internal/authz"
	"founderflow/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MemoryLog is the slice of MemoryService the handler needs
type MemoryLog interface {
	Append(ctx context.Context, startupID, entryType, source, content string) (*models.MemoryEntry, error)
	ListByStartup(ctx context.Context, startupID string, limit int64) ([]models.MemoryEntry, error)
}

// MemoryHandler exposes the append-only memory log of a startup
type MemoryHandler struct {
	gateway *authz.Gateway
	memory  MemoryLog
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(gateway *authz.Gateway, memory MemoryLog) *MemoryHandler {
	return &MemoryHandler{gateway: gateway, memory: memory}
}

// Append records a decision in the startup's memory log
// POST /api/startups/:id/memory
func (h *MemoryHandler) Append(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	var req models.AppendMemoryRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Memory content is required")
	}

	entry, err := h.memory.Append(c.Context(), grant.Startup.ID, models.MemoryTypeDecision, grant.UserID, req.Content)
	if err != nil {
		log.Printf("❌ Failed to append memory entry: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to append memory entry")
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// List returns the startup's memory log, newest first
// GET /api/startups/:id/memory
func (h *MemoryHandler) List(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	limit, _ := strconv.ParseInt(c.Query("limit", "100"), 10, 64)
	if limit < 1 || limit > 500 {
		limit = 100
	}

	entries, err := h.memory.ListByStartup(c.Context(), grant.Startup.ID, limit)
	if err != nil {
		log.Printf("❌ Failed to list memory entries: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to list memory entries")
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}
