package handlers

import (
	"log"
	"strconv"

	"founderflow/internal/authz"
	"founderflow/internal/middleware"
	"founderflow/internal/models"
	"founderflow/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GenerationHandler exposes the agent operations and their stored artifacts
type GenerationHandler struct {
	gateway     *authz.Gateway
	generations *services.GenerationService
	limiter     *middleware.GenerationLimiter
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(gateway *authz.Gateway, generations *services.GenerationService, limiter *middleware.GenerationLimiter) *GenerationHandler {
	return &GenerationHandler{
		gateway:     gateway,
		generations: generations,
		limiter:     limiter,
	}
}

// Generate runs one agent operation against the startup
// POST /api/startups/:id/generate/:kind
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	kind := c.Params("kind")
	if !models.KnownGenerationKind(kind) {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Unknown generation kind: "+kind)
	}

	remaining, ok, err := h.limiter.Allow(c.Context(), grant.UserID)
	if err != nil {
		log.Printf("⚠️  Generation quota check failed: %v", err)
	}
	if !ok {
		return writeError(c, fiber.StatusTooManyRequests, codeRateLimited, "Daily generation limit reached")
	}
	if remaining >= 0 {
		c.Set("X-Generations-Remaining", strconv.FormatInt(remaining, 10))
	}

	record, err := h.generations.Run(c.Context(), grant.Startup, kind, grant.UserID)
	if err != nil {
		return writeGenerationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List returns stored artifacts for the startup, newest first. Filter with
// the kind query parameter.
// GET /api/startups/:id/generations
func (h *GenerationHandler) List(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	kind := c.Query("kind")
	if kind != "" && !models.KnownGenerationKind(kind) {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Unknown generation kind: "+kind)
	}

	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	records, err := h.generations.ListByStartup(c.Context(), grant.Startup.ID, kind, limit)
	if err != nil {
		log.Printf("❌ Failed to list generations: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to list generations")
	}

	return c.JSON(fiber.Map{
		"generations": records,
		"count":       len(records),
	})
}

// PitchDeckHTML renders the latest pitch deck as a standalone HTML page
// GET /api/startups/:id/pitch-deck/html
func (h *GenerationHandler) PitchDeckHTML(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	html, err := h.generations.RenderPitchDeckHTML(c.Context(), grant.Startup.ID)
	if err != nil {
		log.Printf("❌ Failed to render pitch deck: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to render pitch deck")
	}
	if html == "" {
		return writeError(c, fiber.StatusNotFound, codeNotFound, "No pitch deck has been generated yet")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}
