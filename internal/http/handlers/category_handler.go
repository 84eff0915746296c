package handlers

import (
	"pocketshop/internal/log"
	"pocketshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		log.Error(c, "categories.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not load categories")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"categories": cats})
}
