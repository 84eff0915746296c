package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pocketshop/internal/domain"
	applog "pocketshop/internal/log"
	"pocketshop/internal/payment"
	"pocketshop/internal/repos"
)

// CheckoutService runs the one failure-sensitive flow in the system: validate
// the posted cart against stored products, charge the gateway for the
// server-computed total, then decrement stock and persist the order. Any
// failure before the charge leaves no trace; a decrement race after the charge
// is rolled back and handed to reconciliation.
type CheckoutService struct {
	Prods   *repos.ProductRepo
	Orders  *repos.OrderRepo
	Gateway payment.Gateway
}

func NewCheckoutService(prods *repos.ProductRepo, orders *repos.OrderRepo, gw payment.Gateway) *CheckoutService {
	return &CheckoutService{Prods: prods, Orders: orders, Gateway: gw}
}

// Checkout places an order for buyerID, or returns a *CheckoutError describing
// why it could not. The charged amount is always derived from stored prices;
// client-sent prices are only cross-checked and rejected on mismatch.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID string, req domain.CheckoutRequest) (*domain.Order, error) {
	if buyerID == "" {
		return nil, validationErr("missing buyer")
	}
	if req.Nonce == "" {
		return nil, validationErr("missing payment nonce")
	}
	if len(req.Cart) == 0 {
		return nil, validationErr("cart is empty")
	}

	// Shape checks before touching the store.
	seen := make(map[string]bool, len(req.Cart))
	for i, line := range req.Cart {
		if line.ProductID == "" {
			return nil, validationErr("cart line %d: missing product id", i)
		}
		if seen[line.ProductID] {
			return nil, validationErr("cart line %d: duplicate product %s", i, line.ProductID)
		}
		seen[line.ProductID] = true
		if line.Qty != nil && *line.Qty < 1 {
			return nil, validationErr("cart line %d: qty must be a positive integer", i)
		}
	}

	// Resolve authoritative products; a stale or tampered cart is a client
	// error, not a 500.
	lines := make([]checkoutLine, 0, len(req.Cart))
	for _, line := range req.Cart {
		p, err := s.Prods.Get(line.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, validationErr("unknown product %s", line.ProductID)
		}
		if err != nil {
			return nil, err
		}

		// Price integrity: exact match when the client sent one. The stored
		// price is what gets charged either way.
		if line.Price != nil && !decimal.NewFromFloat(*line.Price).Equal(decimal.NewFromFloat(p.Price)) {
			return nil, validationErr("price mismatch for %s", line.ProductID)
		}

		qty := 1
		if line.Qty != nil {
			qty = *line.Qty
		}
		// Pre-check so we fail before charging; the decisive check is the
		// conditional decrement after payment.
		if qty > p.Qty {
			return nil, stockErr("insufficient stock for %s (need %d, have %d)", p.ID, qty, p.Qty)
		}
		lines = append(lines, checkoutLine{product: p, qty: qty})
	}

	// Trusted total, from stored prices only.
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.product.Price).Mul(decimal.NewFromInt(int64(l.qty))))
	}

	res, err := s.Gateway.Charge(ctx, total.String(), req.Nonce)
	if err != nil {
		return nil, paymentErr("gateway charge failed", err)
	}
	if !res.Success {
		return nil, paymentErr("gateway declined: "+res.Message, nil)
	}

	// Payment captured. Decrement stock per line; a race against a concurrent
	// checkout surfaces here as a failed conditional update, in which case the
	// decrements already applied are reversed.
	for i, l := range lines {
		ok, err := s.Prods.DecrementStock(l.product.ID, l.qty)
		if err == nil && ok {
			continue
		}
		s.rollbackDecrements(lines[:i], res.TransactionID)
		if err != nil {
			applog.Error(nil, "checkout.decrement.fail", err, map[string]any{
				"product": l.product.ID, "txn_id": res.TransactionID,
			})
			return nil, persistenceErr("stock update failed after payment", err)
		}
		applog.Error(nil, "checkout.reconcile", nil, map[string]any{
			"reason": "stock depleted after charge", "product": l.product.ID,
			"txn_id": res.TransactionID, "amount": total.String(),
		})
		return nil, stockErr("insufficient stock for %s", l.product.ID)
	}

	order := domain.Order{
		ID:            uuid.NewString(),
		UserID:        buyerID,
		Total:         total.InexactFloat64(),
		TransactionID: res.TransactionID,
		Status:        "PLACED",
	}
	for _, l := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: l.product.ID,
			Title:     l.product.Title,
			Qty:       l.qty,
			Price:     l.product.Price,
		})
	}

	if err := s.Orders.Create(order); err != nil {
		// Money moved and stock is gone but the ledger write failed. Never
		// report success to the client; the txn id is the reconciliation handle.
		applog.Error(nil, "checkout.order.write.fail", err, map[string]any{
			"txn_id": res.TransactionID, "buyer": buyerID, "amount": total.String(),
		})
		return nil, persistenceErr("order not recorded", err)
	}

	return &order, nil
}

type checkoutLine struct {
	product domain.Product
	qty     int
}

func (s *CheckoutService) rollbackDecrements(applied []checkoutLine, txnID string) {
	for _, l := range applied {
		if err := s.Prods.IncrementStock(l.product.ID, l.qty); err != nil {
			applog.Error(nil, "checkout.rollback.fail", err, map[string]any{
				"product": l.product.ID, "qty": l.qty, "txn_id": txnID,
			})
		}
	}
}
