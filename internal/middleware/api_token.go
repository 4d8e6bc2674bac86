package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ValidateAPIToken requires "Authorization: Bearer <token>" on every request.
// An empty token disables the check (local development).
func ValidateAPIToken(token string) fiber.Handler {
	expected := sha256.Sum256([]byte(token))

	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Missing API token",
			})
		}

		// Compare digests so the comparison time does not depend on length
		got := sha256.Sum256([]byte(strings.TrimPrefix(auth, "Bearer ")))
		if subtle.ConstantTimeCompare(got[:], expected[:]) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid API token",
			})
		}

		return c.Next()
	}
}
