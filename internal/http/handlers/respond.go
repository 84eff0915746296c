package handlers

import "github.com/gofiber/fiber/v2"

// ok wraps a success payload with the flag the SPA keys on.
func ok(c *fiber.Ctx, status int, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["ok"] = true
	return c.Status(status).JSON(data)
}

// fail sends a client-safe failure body. Internal detail stays in server logs.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"ok": false, "message": message})
}
