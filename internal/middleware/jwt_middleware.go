package middleware

import (
	"strings"

	"storefront/internal/applog"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireOperator is a Fiber middleware that only lets requests carrying a
// valid operator JWT through. The operator's id and username are stored in
// Locals for later handlers and the request log.
func RequireOperator(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			applog.Security(c, "auth.missing", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "failed",
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "failed",
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			applog.Security(c, "auth.invalid_token", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "failed",
				"message": "Invalid or expired token",
			})
		}

		c.Locals("operator_id", claims["operator_id"])
		if username, ok := claims["username"].(string); ok {
			c.Locals("username", username)
		}
		return c.Next()
	}
}
