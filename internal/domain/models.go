package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Product struct {
	ID          string  `db:"id" json:"_id"`
	CategoryID  string  `db:"category_id" json:"category"`
	Title       string  `db:"title" json:"name"`
	Description string  `db:"description" json:"description,omitempty"`
	Condition   string  `db:"condition" json:"condition"` // NEW | USED
	Price       float64 `db:"price" json:"price"`
	Qty         int     `db:"qty" json:"qty"`
	ImagesJSON  string  `db:"images_json" json:"-"`
	Active      bool    `db:"active" json:"-"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
