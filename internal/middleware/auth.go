package middleware

import (
	"log"

	"founderflow/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the bearer token and stores the authenticated
// user's identity in the request locals. Startup-scoped mutation routes do
// NOT use this middleware; they go through the access gateway instead, which
// performs its own verification.
func AuthMiddleware(jwtAuth *auth.JWTAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := auth.ExtractToken(c.Get("Authorization"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{
					"message": "Missing or invalid authorization token",
					"code":    "unauthenticated",
				},
			})
		}

		user, err := jwtAuth.VerifyAccessToken(token)
		if err != nil {
			log.Printf("❌ Auth failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{
					"message": "Invalid or expired token",
					"code":    "unauthenticated",
				},
			})
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_email", user.Email)
		c.Locals("user_role", user.Role)
		return c.Next()
	}
}
