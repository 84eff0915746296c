package handlers

import (
	applog "pocketshop/internal/log"
	"pocketshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
