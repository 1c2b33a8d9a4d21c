package middleware

import (
	"founderflow/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// AdminSessionMiddleware guards the admin surface. It accepts only the
// signed session cookie minted by the admin login endpoint; user JWTs carry
// no weight here.
func AdminSessionMiddleware(sessions *auth.AdminSessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.AdminSessionCookie)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{
					"message": "Admin session required",
					"code":    "unauthenticated",
				},
			})
		}

		if err := sessions.Validate(token); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{
					"message": "Invalid or expired admin session",
					"code":    "unauthenticated",
				},
			})
		}

		return c.Next()
	}
}
