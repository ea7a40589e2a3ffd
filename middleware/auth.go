package middleware

import (
	"strings"

	"payexsync/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SigningKey is the HMAC secret of admin tokens.
func SigningKey() []byte {
	return []byte(config.Config("JWT_SECRET", "payexsync-dev-secret"))
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing or malformed JWT"})
		}
		if !strings.HasPrefix(token, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token format"})
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims := jwt.MapClaims{}
		parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return SigningKey(), nil
		})
		if err != nil || !parsedToken.Valid {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
		}

		role, ok := claims["role"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Role claim is missing or invalid"})
		}

		c.Locals("role", role)
		c.Locals("user", parsedToken)
		return c.Next()
	}
}

// AdminOnly lets admins through. With superAdminOnly only superadmins pass.
func AdminOnly(superAdminOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden: You do not have access to this resource."})
		}

		if role == "superadmin" {
			return c.Next()
		}
		if superAdminOnly {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden: Superadmin access required."})
		}
		if role == "admin" {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden: Admin access required."})
	}
}

// WebhookAuth checks the shared secret the shop sends with status
// transitions. An empty WEBHOOK_SECRET disables the check.
func WebhookAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := config.Config("WEBHOOK_SECRET", "")
		if secret != "" && c.Get("X-Webhook-Secret") != secret {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid webhook secret",
			})
		}
		return c.Next()
	}
}
