package handlers

import (
	"pocketshop/internal/domain"
	applog "pocketshop/internal/log"
	"pocketshop/internal/repos"
	"pocketshop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	OrderRepo *repos.OrderRepo
	Prods     *repos.ProductRepo
}

// GET /admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.OrderRepo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"orders": ords})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || id == "" || body.Status == "" {
		return fail(c, fiber.StatusBadRequest, "missing id or status")
	}
	if err := h.OrderRepo.UpdateStatus(id, body.Status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return fail(c, fiber.StatusBadRequest, "could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": body.Status})
	return ok(c, fiber.StatusOK, nil)
}

// GET /admin/stock
func (h *AdminHandler) Stock(c *fiber.Ctx) error {
	rows, err := h.Prods.ListStock()
	if err != nil {
		applog.Error(c, "admin.stock.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "could not load stock")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"stock": rows})
}

// POST /admin/stock
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, okID := validate.ID(body.ProductID); !okID || body.Qty < 0 {
		return fail(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := h.Prods.SetQty(body.ProductID, body.Qty); err != nil {
		applog.Error(c, "admin.stock.save.fail", err, map[string]any{"product": body.ProductID, "qty": body.Qty})
		return fail(c, fiber.StatusBadRequest, "could not save stock")
	}
	applog.Audit(c, "admin.stock.save", map[string]any{"product": body.ProductID, "qty": body.Qty})
	return ok(c, fiber.StatusOK, nil)
}

// POST /admin/products
func (h *AdminHandler) SaveProduct(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, okID := validate.ID(p.ID); !okID {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	if _, okCond := validate.Condition(p.Condition); !okCond {
		return fail(c, fiber.StatusBadRequest, "invalid condition")
	}
	if p.Title == "" || p.CategoryID == "" || p.Price < 0 || p.Qty < 0 {
		return fail(c, fiber.StatusBadRequest, "invalid input")
	}
	p.Active = true
	if err := h.Prods.Upsert(p); err != nil {
		applog.Error(c, "admin.product.save.fail", err, map[string]any{"product": p.ID})
		return fail(c, fiber.StatusBadRequest, "could not save product")
	}
	applog.Audit(c, "admin.product.save", map[string]any{"product": p.ID})
	return ok(c, fiber.StatusOK, nil)
}
