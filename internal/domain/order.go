package domain

// Order is the persisted record of one successful checkout. Line items are a
// snapshot of the product at purchase time; later catalog edits do not touch it.
type Order struct {
	ID            string      `db:"id" json:"_id"`
	UserID        string      `db:"user_id" json:"userId"`
	Total         float64     `db:"total" json:"total"`
	TransactionID string      `db:"payment_txn_id" json:"transactionId"`
	Status        string      `db:"status" json:"status"`
	CreatedAt     string      `db:"created_at" json:"createdAt"`
	Items         []OrderItem `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	OrderID   string  `db:"order_id" json:"-"`
	ProductID string  `db:"product_id" json:"_id"`
	Title     string  `db:"title" json:"name"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
}
