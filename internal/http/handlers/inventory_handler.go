package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pocketshop/internal/services"
	"pocketshop/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return fail(c, fiber.StatusBadRequest, "missing productId")
	}
	if _, okID := validate.ID(productID); !okID {
		return fail(c, fiber.StatusBadRequest, "invalid productId")
	}

	avail, err := h.Inv.CheckAvailability(productID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "could not check availability")
	}
	return c.JSON(avail)
}
