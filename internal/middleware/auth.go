package middleware

import (
	"homestead-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const accountLocal = "account"

// RequireAccount ensures a connected account is in the session.
// Returns 401 with the standard error format if not.
func RequireAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := c.Locals(accountLocal)
		if account == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetAccountAddress returns the connected account's address from Locals
// ("" if not connected).
func GetAccountAddress(c *fiber.Ctx) string {
	m, ok := c.Locals(accountLocal).(map[string]interface{})
	if !ok {
		return ""
	}
	addr, _ := m["address"].(string)
	return addr
}
