package handlers

import (
	"context"
	"log"
	"strings"

	"founderflow/internal/authz"
	"founderflow/internal/models"
	"founderflow/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StartupHandler handles the startup CRUD and membership endpoints. Every
// startup-scoped route resolves access through the gateway; only creation
// and listing, which have no target startup, rely on the auth middleware.
type StartupHandler struct {
	gateway     *authz.Gateway
	startups    *services.StartupService
	memberships *services.MembershipService
}

// NewStartupHandler creates a new startup handler
func NewStartupHandler(gateway *authz.Gateway, startups *services.StartupService, memberships *services.MembershipService) *StartupHandler {
	return &StartupHandler{
		gateway:     gateway,
		startups:    startups,
		memberships: memberships,
	}
}

// bearer pulls the raw token out of the Authorization header; the gateway
// does the actual verification.
func bearer(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Create creates a new startup owned by the caller
// POST /api/startups
func (h *StartupHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Authentication required")
	}

	var req models.CreateStartupRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Startup name is required")
	}

	startup, err := h.startups.Create(context.Background(), userID, &req)
	if err != nil {
		log.Printf("❌ Failed to create startup: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to create startup")
	}

	log.Printf("✅ Startup created: %s (%s) by %s", startup.Name, startup.ID, userID)
	return c.Status(fiber.StatusCreated).JSON(startup)
}

// List returns every startup the caller owns or is a member of
// GET /api/startups
func (h *StartupHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Authentication required")
	}

	startups, err := h.startups.ListByUser(context.Background(), userID)
	if err != nil {
		log.Printf("❌ Failed to list startups: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to list startups")
	}

	return c.JSON(fiber.Map{
		"startups": startups,
		"count":    len(startups),
	})
}

// Get returns one startup
// GET /api/startups/:id
func (h *StartupHandler) Get(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	return c.JSON(fiber.Map{
		"startup": grant.Startup,
		"role":    grant.Role,
	})
}

// UpdateStage moves the startup to a named workflow stage
// PUT /api/startups/:id/stage
func (h *StartupHandler) UpdateStage(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	var req models.UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid request body")
	}
	if !models.KnownStage(req.Stage) {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Unknown stage: "+req.Stage)
	}

	startup, err := h.startups.UpdateStage(c.Context(), grant.Startup.ID, req.Stage)
	if err != nil {
		log.Printf("❌ Failed to update stage: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to update stage")
	}

	log.Printf("🔄 Startup %s moved to stage %s by %s", startup.ID, req.Stage, grant.UserID)
	return c.JSON(startup)
}

// AddMember records a membership row on the startup. Only the owner and
// cofounders may grow the team.
// POST /api/startups/:id/members
func (h *StartupHandler) AddMember(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	if grant.Role != models.RoleOwner && grant.Role != models.RoleCofounder {
		return writeError(c, fiber.StatusForbidden, codeForbidden, "Only the owner or a cofounder can add members")
	}

	var req models.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Member user ID is required")
	}

	membership, err := h.memberships.Add(c.Context(), grant.Startup.ID, &req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "unknown role") {
			return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, err.Error())
		}
		log.Printf("❌ Failed to add member: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to add member")
	}

	log.Printf("✅ Member %s added to startup %s as %s", req.UserID, grant.Startup.ID, req.Role)
	return c.Status(fiber.StatusCreated).JSON(membership)
}

// ListMembers returns the startup's membership rows
// GET /api/startups/:id/members
func (h *StartupHandler) ListMembers(c *fiber.Ctx) error {
	grant, err := h.gateway.Authorize(c.Context(), bearer(c), c.Params("id"))
	if err != nil {
		return writeAuthzError(c, err)
	}

	members, err := h.memberships.ListByStartup(c.Context(), grant.Startup.ID)
	if err != nil {
		log.Printf("❌ Failed to list members: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to list members")
	}

	return c.JSON(fiber.Map{
		"members": members,
		"count":   len(members),
	})
}
