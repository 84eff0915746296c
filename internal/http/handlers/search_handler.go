package handlers

import (
	"strings"

	"pocketshop/internal/log"
	"pocketshop/internal/services"
	"pocketshop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		return ok(c, fiber.StatusOK, fiber.Map{"products": []any{}, "count": 0})
	}
	q, okQ := validate.Q(rawQ)
	if !okQ {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return fail(c, fiber.StatusBadRequest, "enter a valid keyword (letters/numbers only)")
	}
	q = strings.ToLower(q)
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, okID := validate.ID(category); !okID {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return fail(c, fiber.StatusBadRequest, "invalid category")
		}
	}
	condition := strings.TrimSpace(c.Query("condition")) // NEW | USED
	if condition != "" {
		if _, okCond := validate.Condition(condition); !okCond {
			log.Security(c, "validation.fail", map[string]any{"field": "condition"})
			return fail(c, fiber.StatusBadRequest, "invalid filter")
		}
	}

	products, err := h.Catalog.Search(q, category, condition, 1, 20)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not load results")
	}

	return ok(c, fiber.StatusOK, fiber.Map{"products": products, "count": len(products)})
}
