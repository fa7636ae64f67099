package middleware

import (
	"github.com/gofiber/fiber/v2"

	"tablecrm/pkg/utils"
)

// UserIDKey is the fiber local holding the authenticated user's id.
const UserIDKey = "user_id"

// AuthMiddleware validates the session cookie and injects the user id into
// the request locals. Every record query downstream is scoped by that id.
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			// Dev convenience: act as the first seeded user.
			c.Locals(UserIDKey, int64(1))
			return c.Next()
		}

		token := c.Cookies(utils.CookieName)
		if token == "" {
			// Fall back to a bearer header for non-browser clients.
			auth := c.Get("Authorization")
			if len(auth) > 7 && auth[:7] == "Bearer " {
				token = auth[7:]
			}
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		id, err := claims.ID()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals(UserIDKey, id)
		return c.Next()
	}
}

// UserID reads the authenticated user id set by AuthMiddleware.
func UserID(c *fiber.Ctx) int64 {
	if id, ok := c.Locals(UserIDKey).(int64); ok {
		return id
	}
	return 0
}
