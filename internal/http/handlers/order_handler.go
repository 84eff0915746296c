package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pocketshop/internal/domain"
	applog "pocketshop/internal/log"
	"pocketshop/internal/repos"
)

// OrderHandler serves the read side of orders; placing one goes through
// CheckoutHandler.
type OrderHandler struct {
	Repo *repos.OrderRepo
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	if oid == "" {
		return fail(c, fiber.StatusNotFound, "order not found")
	}

	o, err := h.Repo.Get(oid)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "order not found")
	}

	// Ownership check: the buyer or an admin. Anyone else gets the same 404
	// as a missing order.
	u, _ := c.Locals("user").(*domain.User)
	if u == nil || (u.ID != o.UserID && u.Role != "ADMIN") {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return fail(c, fiber.StatusNotFound, "order not found")
	}

	return ok(c, fiber.StatusOK, fiber.Map{"order": o})
}

// History lists orders for the current logged-in user.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return fail(c, fiber.StatusUnauthorized, "login required")
	}
	orders, err := h.Repo.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"orders": orders})
}
