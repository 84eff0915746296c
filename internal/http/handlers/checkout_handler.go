package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pocketshop/internal/domain"
	applog "pocketshop/internal/log"
	"pocketshop/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// Place handles POST /api/v1/checkout. The buyer comes from the authenticated
// session (RequireUser runs first); the body carries the nonce and cart.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return fail(c, fiber.StatusUnauthorized, "login required")
	}

	var req domain.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "checkout.body.fail", map[string]any{"error": err.Error()})
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.Checkout.Checkout(c.Context(), u.ID, req)
	if err != nil {
		return h.placeError(c, err)
	}

	applog.Audit(c, "checkout.success", map[string]any{
		"order_id": order.ID, "txn_id": order.TransactionID, "total": order.Total,
	})
	return ok(c, fiber.StatusCreated, fiber.Map{
		"order":         order,
		"transactionId": order.TransactionID,
	})
}

func (h *CheckoutHandler) placeError(c *fiber.Ctx, err error) error {
	var ce *services.CheckoutError
	if !errors.As(err, &ce) {
		applog.Error(c, "checkout.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "checkout failed")
	}

	switch ce.Kind {
	case services.KindValidation:
		applog.Security(c, "checkout.validation.fail", map[string]any{"reason": ce.Message})
		return fail(c, fiber.StatusBadRequest, ce.Message)
	case services.KindInsufficientStock:
		applog.Info(c, "checkout.stock.conflict", map[string]any{"reason": ce.Message})
		return fail(c, fiber.StatusConflict, ce.Message)
	case services.KindPayment:
		// Gateway detail (decline codes, transport errors) stays server-side.
		applog.Error(c, "checkout.payment.fail", err, nil)
		return fail(c, fiber.StatusPaymentRequired, "payment was not accepted")
	default:
		applog.Error(c, "checkout.persistence.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "checkout could not be completed")
	}
}
