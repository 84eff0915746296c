package handlers

import (
	"pocketshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartAddRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var body cartAddRequest
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.ProductID == "" {
		return fail(c, fiber.StatusBadRequest, "missing productId")
	}
	if body.Qty <= 0 {
		body.Qty = 1
	}
	if err := h.Cart.Add(sid, body.ProductID, body.Qty); err != nil {
		return fail(c, fiber.StatusBadRequest, "could not add to cart")
	}
	return h.View(c)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"cart": cv})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		return fail(c, fiber.StatusInternalServerError, "could not clear cart")
	}
	return ok(c, fiber.StatusOK, nil)
}
