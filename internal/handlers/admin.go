package handlers

import (
	"crypto/subtle"
	"log"
	"time"

	"founderflow/internal/config"
	"founderflow/internal/services"
	"founderflow/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the internal admin surface: session login plus the
// maintenance operations hidden behind it.
type AdminHandler struct {
	cfg      *config.Config
	sessions *auth.AdminSessions

	users       *services.UserService
	startups    *services.StartupService
	memory      *services.MemoryService
	generations *services.GenerationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cfg *config.Config, sessions *auth.AdminSessions, users *services.UserService, startups *services.StartupService, memory *services.MemoryService, generations *services.GenerationService) *AdminHandler {
	return &AdminHandler{
		cfg:         cfg,
		sessions:    sessions,
		users:       users,
		startups:    startups,
		memory:      memory,
		generations: generations,
	}
}

// AdminLoginRequest is the request body for admin login
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the configured admin credentials and mints a session cookie.
// Credentials are compared in constant time; the admin account is a single
// configured pair, not a user record.
// POST /api/admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid request body")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		log.Printf("⚠️ Failed admin login attempt from %s", c.IP())
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Invalid admin credentials")
	}

	token, err := h.sessions.Create()
	if err != nil {
		log.Printf("❌ Failed to mint admin session: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.AdminSessionCookie,
		Value:    token,
		Expires:  time.Now().Add(auth.AdminSessionTTL),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Strict",
		Path:     "/api/admin",
	})

	log.Printf("✅ Admin session created from %s", c.IP())
	return c.JSON(fiber.Map{
		"message":    "Admin session created",
		"expires_in": int(auth.AdminSessionTTL.Seconds()),
	})
}

// Logout clears the session cookie. Sessions are stateless, so an already
// issued token stays technically valid until it expires; clearing the cookie
// is all logout can do.
// POST /api/admin/logout
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.AdminSessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/api/admin",
	})
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// Session reports whether the caller holds a valid admin session
// GET /api/admin/session
func (h *AdminHandler) Session(c *fiber.Ctx) error {
	token := c.Cookies(auth.AdminSessionCookie)
	if token == "" {
		return c.JSON(fiber.Map{"valid": false})
	}
	if err := h.sessions.Validate(token); err != nil {
		return c.JSON(fiber.Map{"valid": false})
	}
	return c.JSON(fiber.Map{"valid": true})
}

// Stats returns platform-wide counts for the admin dashboard
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	ctx := c.Context()

	users, err := h.users.GetUserCount(ctx)
	if err != nil {
		log.Printf("❌ Failed to count users: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to load stats")
	}
	startups, err := h.startups.Count(ctx)
	if err != nil {
		log.Printf("❌ Failed to count startups: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to load stats")
	}
	generations, err := h.generations.Count(ctx)
	if err != nil {
		log.Printf("❌ Failed to count generations: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to load stats")
	}

	return c.JSON(fiber.Map{
		"users":       users,
		"startups":    startups,
		"generations": generations,
	})
}

// PurgeMemory wipes a startup's entire memory log. The only deletion path
// for memory entries in the system.
// DELETE /api/admin/startups/:id/memory
func (h *AdminHandler) PurgeMemory(c *fiber.Ctx) error {
	startupID := c.Params("id")

	startup, err := h.startups.GetByID(c.Context(), startupID)
	if err != nil {
		log.Printf("❌ Failed to load startup: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to load startup")
	}
	if startup == nil {
		return writeError(c, fiber.StatusNotFound, codeNotFound, "Startup not found")
	}

	deleted, err := h.memory.DeleteAllForStartup(c.Context(), startupID)
	if err != nil {
		log.Printf("❌ Failed to purge memory: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to purge memory")
	}

	return c.JSON(fiber.Map{
		"deleted": deleted,
	})
}
