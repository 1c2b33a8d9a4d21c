package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"founderflow/internal/models"
	"founderflow/internal/services"
	"founderflow/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles the email/password authentication endpoints
type AuthHandler struct {
	jwtAuth     *auth.JWTAuth
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtAuth *auth.JWTAuth, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		jwtAuth:     jwtAuth,
		userService: userService,
	}
}

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest is the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is the response for successful authentication
type AuthResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	User         models.UserResponse `json:"user"`
	ExpiresIn    int                 `json:"expires_in"` // seconds
}

// Register creates a new user account
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Valid email address is required")
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, err.Error())
	}

	ctx := context.Background()

	existing, err := h.userService.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		log.Printf("❌ Failed to check existing user: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to create account")
	}
	if existing != nil {
		return writeError(c, fiber.StatusConflict, codeConflict, "User with this email already exists")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Failed to hash password: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to create account")
	}

	user := &models.User{
		ID:                  primitive.NewObjectID(),
		Email:               req.Email,
		PasswordHash:        passwordHash,
		Role:                "user",
		RefreshTokenVersion: 0,
		CreatedAt:           time.Now(),
		LastLoginAt:         time.Now(),
	}

	if err := h.userService.CreateUser(ctx, user); err != nil {
		log.Printf("❌ Failed to create user: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to create account")
	}

	accessToken, refreshToken, err := h.jwtAuth.GenerateTokens(user.ID.Hex(), user.Email, user.Role, user.RefreshTokenVersion)
	if err != nil {
		log.Printf("❌ Failed to generate tokens: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to generate authentication tokens")
	}

	h.setRefreshCookie(c, refreshToken)
	log.Printf("✅ User registered: %s (%s)", user.Email, user.ID.Hex())

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
		ExpiresIn:    int(h.jwtAuth.AccessTokenExpiry.Seconds()),
	})
}

// Login authenticates a user
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	ctx := context.Background()

	user, err := h.userService.GetUserByEmail(ctx, req.Email)
	if err != nil || user == nil {
		// Flat delay to blunt email enumeration
		time.Sleep(200 * time.Millisecond)
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Invalid email or password")
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil || !valid {
		log.Printf("⚠️ Failed login attempt for user: %s", req.Email)
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Invalid email or password")
	}

	if err := h.userService.TouchLastLogin(ctx, user.ID); err != nil {
		log.Printf("⚠️ Failed to update last login time: %v", err)
	}

	accessToken, refreshToken, err := h.jwtAuth.GenerateTokens(user.ID.Hex(), user.Email, user.Role, user.RefreshTokenVersion)
	if err != nil {
		log.Printf("❌ Failed to generate tokens: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to generate authentication tokens")
	}

	h.setRefreshCookie(c, refreshToken)
	log.Printf("✅ User logged in: %s (%s)", user.Email, user.ID.Hex())

	return c.JSON(AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.ToResponse(),
		ExpiresIn:    int(h.jwtAuth.AccessTokenExpiry.Seconds()),
	})
}

// RefreshToken generates a new access token from a refresh token
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Refresh token is required")
	}

	claims, err := h.jwtAuth.VerifyRefreshToken(refreshToken)
	if err != nil {
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Invalid or expired refresh token")
	}

	ctx := context.Background()

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Invalid user ID in token")
	}

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "User not found")
	}

	// Logout bumps the stored version; refresh tokens minted before that
	// carry the old one and stop working here.
	if claims.TokenVersion != user.RefreshTokenVersion {
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Refresh token has been revoked")
	}

	newAccessToken, _, err := h.jwtAuth.GenerateTokens(user.ID.Hex(), user.Email, user.Role, user.RefreshTokenVersion)
	if err != nil {
		log.Printf("❌ Failed to generate new access token: %v", err)
		return writeError(c, fiber.StatusInternalServerError, codeInternal, "Failed to refresh token")
	}

	return c.JSON(fiber.Map{
		"access_token": newAccessToken,
		"expires_in":   int(h.jwtAuth.AccessTokenExpiry.Seconds()),
	})
}

// Logout invalidates the caller's refresh tokens and clears the cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if ok && userID != "" {
		if objID, err := primitive.ObjectIDFromHex(userID); err == nil {
			if err := h.userService.BumpRefreshTokenVersion(context.Background(), objID); err != nil {
				log.Printf("⚠️ Failed to increment token version: %v", err)
			}
		}
		log.Printf("✅ User logged out: %s", userID)
	}

	c.ClearCookie("refresh_token")
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the currently authenticated user
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return writeError(c, fiber.StatusUnauthorized, codeUnauthenticated, "Authentication required")
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, codeInvalidRequest, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(context.Background(), objID)
	if err != nil || user == nil {
		return writeError(c, fiber.StatusNotFound, codeNotFound, "User not found")
	}

	return c.JSON(user.ToResponse())
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(h.jwtAuth.RefreshTokenExpiry),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Strict",
		Path:     "/api/auth",
	})
}
