package repos_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pocketshop/internal/repos"
)

func stockDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE products(id TEXT PRIMARY KEY, category_id TEXT, title TEXT, description TEXT,
	  condition TEXT, price NUMERIC, qty INTEGER, images_json TEXT, active INTEGER,
	  created_at TEXT, updated_at TEXT);
	INSERT INTO products(id,category_id,title,condition,price,qty,active,created_at)
	  VALUES ('mouse-001','accessories','Wireless Mouse','NEW',25,3,1,'now');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestProductRepo_DecrementStock(t *testing.T) {
	repo := repos.NewProductRepo(stockDB(t))

	okDec, err := repo.DecrementStock("mouse-001", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !okDec {
		t.Fatal("expected decrement to apply")
	}
	p, err := repo.Get("mouse-001")
	if err != nil {
		t.Fatal(err)
	}
	if p.Qty != 1 {
		t.Fatalf("want qty=1, got %d", p.Qty)
	}

	// asking for more than remains must refuse and leave stock untouched
	okDec, err = repo.DecrementStock("mouse-001", 2)
	if err != nil {
		t.Fatal(err)
	}
	if okDec {
		t.Fatal("expected decrement to be refused")
	}
	p, _ = repo.Get("mouse-001")
	if p.Qty != 1 {
		t.Fatalf("qty changed on refused decrement: %d", p.Qty)
	}

	// taking exactly the rest drains to zero, then the next unit is refused
	okDec, _ = repo.DecrementStock("mouse-001", 1)
	if !okDec {
		t.Fatal("expected last unit to be granted")
	}
	okDec, _ = repo.DecrementStock("mouse-001", 1)
	if okDec {
		t.Fatal("sold more units than existed")
	}
	p, _ = repo.Get("mouse-001")
	if p.Qty != 0 {
		t.Fatalf("want qty=0, got %d", p.Qty)
	}
}

func TestProductRepo_DecrementUnknownProduct(t *testing.T) {
	repo := repos.NewProductRepo(stockDB(t))
	okDec, err := repo.DecrementStock("ghost-999", 1)
	if err != nil {
		t.Fatal(err)
	}
	if okDec {
		t.Fatal("decrement of unknown product must not apply")
	}
}

func TestProductRepo_IncrementRestores(t *testing.T) {
	repo := repos.NewProductRepo(stockDB(t))

	if _, err := repo.DecrementStock("mouse-001", 3); err != nil {
		t.Fatal(err)
	}
	if err := repo.IncrementStock("mouse-001", 3); err != nil {
		t.Fatal(err)
	}
	p, err := repo.Get("mouse-001")
	if err != nil {
		t.Fatal(err)
	}
	if p.Qty != 3 {
		t.Fatalf("want qty restored to 3, got %d", p.Qty)
	}
}
