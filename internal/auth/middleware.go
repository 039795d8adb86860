package auth

import (
	"strings"

	"flower-retail-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

const CtxRetailerIDKey = "retailer_id"

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization format must be 'Bearer <token>'")
		}

		claims, err := ParseClaims(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}
		// reset tokens cannot be used as a session
		if claims.Purpose != "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(CtxRetailerIDKey, claims.RetailerID)

		return c.Next()
	}
}

// RetailerID returns the authenticated retailer's id set by JWTMiddleware.
func RetailerID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(CtxRetailerIDKey).(string)
	if !ok || id == "" {
		return "", fiber.NewError(fiber.StatusForbidden, "Retailer identity missing")
	}
	return id, nil
}
