package handlers

import (
	"pocketshop/internal/domain"
	"pocketshop/internal/log"
	"pocketshop/internal/services"
	"pocketshop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" {
		return fail(c, fiber.StatusNotFound, "product not found")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"product": p})
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	if category != "" {
		if _, okID := validate.ID(category); !okID {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return fail(c, fiber.StatusBadRequest, "invalid category")
		}
	}
	page := c.QueryInt("page", 1)
	var (
		products []domain.Product
		err      error
	)
	if category != "" {
		products, err = h.Catalog.ListProductsByCategory(category, page, 12)
	} else {
		products, err = h.Catalog.Search("", "", "", page, 12)
	}
	if err != nil {
		log.Error(c, "products.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not load products")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"products": products, "count": len(products)})
}
