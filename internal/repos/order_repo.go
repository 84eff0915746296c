package repos

import (
	"pocketshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin / history list summary ----------
type OrderSummary struct {
	ID            string  `db:"id" json:"_id"`
	UserID        string  `db:"user_id" json:"userId"`
	Total         float64 `db:"total" json:"total"`
	TransactionID string  `db:"payment_txn_id" json:"transactionId"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}

// Create writes the order header and its line-item snapshot in one transaction,
// so a partially written order can never be observed.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, user_id, total, payment_txn_id, status, created_at)
	  VALUES(?, ?, ?, ?, 'PLACED', CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.Total, o.TransactionID); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, title, qty, price)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Title, it.Qty, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT id, user_id, total, payment_txn_id, status, created_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, err
	}
	if err := r.db.Select(&o.Items, `
		SELECT order_id, product_id, title, qty, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY title
	`, orderID); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, user_id, total, payment_txn_id, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByUser(userID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, user_id, total, payment_txn_id, status, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) CountAll() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
