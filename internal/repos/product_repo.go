package repos

import (
	"pocketshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, title, COALESCE(description,'') AS description, condition,
  price, qty, COALESCE(images_json,'') AS images_json, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) ListByCategory(catID string, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ? AND active = 1
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?
	`, catID, limit, offset)
	return out, err
}

func (r *ProductRepo) Search(q, catID, cond string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	if cond != "" {
		where += ` AND condition = ?`
		args = append(args, cond)
	}

	query := `
	  SELECT ` + productCols + `
	  FROM products
	  WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.Select(&out, query, args...)
	return out, err
}

// DecrementStock subtracts "by" units only if enough stock exists, in one
// statement. Returns false when stock was insufficient at execution time, so
// two concurrent checkouts for the last unit cannot both pass.
func (r *ProductRepo) DecrementStock(id string, by int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE products
		SET qty = qty - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND qty >= ?
	`, by, id, by)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementStock restores units removed by a decrement that has to be undone.
func (r *ProductRepo) IncrementStock(id string, by int) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET qty = qty + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, by, id)
	return err
}

// SetQty sets stock for a product (admin restock).
func (r *ProductRepo) SetQty(id string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE products SET qty = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, qty, id)
	return err
}

// Row used by admin stock pages
type StockRow struct {
	ProductID string `db:"id"`
	Title     string `db:"title"`
	Qty       int    `db:"qty"`
}

func (r *ProductRepo) ListStock() ([]StockRow, error) {
	var rows []StockRow
	err := r.db.Select(&rows, `
		SELECT id, title, qty FROM products ORDER BY title
	`)
	return rows, err
}

// Upsert creates or updates a product (admin CRUD).
func (r *ProductRepo) Upsert(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id, category_id, title, description, condition, price, qty, images_json, active, created_at)
		VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  category_id = excluded.category_id,
		  title       = excluded.title,
		  description = excluded.description,
		  condition   = excluded.condition,
		  price       = excluded.price,
		  qty         = excluded.qty,
		  images_json = excluded.images_json,
		  active      = excluded.active,
		  updated_at  = CURRENT_TIMESTAMP
	`, p.ID, p.CategoryID, p.Title, p.Description, p.Condition, p.Price, p.Qty, p.ImagesJSON, p.Active)
	return err
}
