package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pocketshop/internal/domain"
	"pocketshop/internal/payment"
	"pocketshop/internal/repos"
	"pocketshop/internal/services"
)

type chargeCall struct {
	Amount string
	Nonce  string
}

type fakeGateway struct {
	calls    []chargeCall
	result   payment.ChargeResult
	err      error
	onCharge func()
}

func (f *fakeGateway) Charge(_ context.Context, amount, nonce string) (payment.ChargeResult, error) {
	f.calls = append(f.calls, chargeCall{Amount: amount, Nonce: nonce})
	if f.onCharge != nil {
		f.onCharge()
	}
	return f.result, f.err
}

func checkoutDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	schema := `
	CREATE TABLE categories(id TEXT PRIMARY KEY, name TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE products(id TEXT PRIMARY KEY, category_id TEXT, title TEXT, description TEXT,
	  condition TEXT, price NUMERIC, qty INTEGER, images_json TEXT, active INTEGER,
	  created_at TEXT, updated_at TEXT);
	CREATE TABLE orders(id TEXT PRIMARY KEY, user_id TEXT, total NUMERIC,
	  payment_txn_id TEXT, status TEXT, created_at TEXT);
	CREATE TABLE order_items(order_id TEXT, product_id TEXT, title TEXT, qty INTEGER, price NUMERIC,
	  PRIMARY KEY (order_id, product_id));

	INSERT INTO categories(id,name) VALUES ('electronics','Electronics');
	INSERT INTO products(id,category_id,title,description,condition,price,qty,images_json,active,created_at)
	  VALUES ('laptop-001','electronics','Ultralight Laptop 14"','Thin and light','NEW',1500,10,'[]',1,'now'),
	         ('mouse-001','electronics','Wireless Mouse','Low latency','NEW',25,7,'[]',1,'now');
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func newCheckout(t *testing.T, gw payment.Gateway) (*services.CheckoutService, *repos.ProductRepo, *repos.OrderRepo) {
	t.Helper()
	db := checkoutDB(t)
	prods := repos.NewProductRepo(db)
	orders := repos.NewOrderRepo(db)
	return services.NewCheckoutService(prods, orders, gw), prods, orders
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func qtyOf(t *testing.T, prods *repos.ProductRepo, id string) int {
	t.Helper()
	p, err := prods.Get(id)
	require.NoError(t, err)
	return p.Qty
}

func kindOf(t *testing.T, err error) services.CheckoutErrorKind {
	t.Helper()
	var ce *services.CheckoutError
	require.ErrorAs(t, err, &ce)
	return ce.Kind
}

func TestCheckout_Success(t *testing.T) {
	gw := &fakeGateway{result: payment.ChargeResult{Success: true, TransactionID: "txn-1"}}
	svc, prods, orders := newCheckout(t, gw)

	order, err := svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "nonce-abc",
		Cart: []domain.CartLine{
			{ProductID: "laptop-001", Price: fp(1500)},
			{ProductID: "mouse-001", Price: fp(25)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Equal(t, "u-alice", order.UserID)
	require.Equal(t, "txn-1", order.TransactionID)
	require.InDelta(t, 1525, order.Total, 0.0001)

	// the gateway was charged the server-computed amount, once
	require.Len(t, gw.calls, 1)
	require.Equal(t, "1525", gw.calls[0].Amount)
	require.Equal(t, "nonce-abc", gw.calls[0].Nonce)

	// stock decremented by the requested amounts (default qty 1)
	require.Equal(t, 9, qtyOf(t, prods, "laptop-001"))
	require.Equal(t, 6, qtyOf(t, prods, "mouse-001"))

	// exactly one order persisted with the snapshot
	got, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	n, err := orders.CountAll()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestCheckout_MultiQuantityTotal(t *testing.T) {
	gw := &fakeGateway{result: payment.ChargeResult{Success: true, TransactionID: "txn-2"}}
	svc, prods, _ := newCheckout(t, gw)

	_, err := svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "n",
		Cart: []domain.CartLine{
			{ProductID: "laptop-001", Qty: ip(2)},
			{ProductID: "mouse-001", Qty: ip(3)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "3075", gw.calls[0].Amount) // 2*1500 + 3*25
	require.Equal(t, 8, qtyOf(t, prods, "laptop-001"))
	require.Equal(t, 4, qtyOf(t, prods, "mouse-001"))
}

func TestCheckout_PriceMismatchRejected(t *testing.T) {
	gw := &fakeGateway{result: payment.ChargeResult{Success: true, TransactionID: "txn-x"}}
	svc, prods, orders := newCheckout(t, gw)

	_, err := svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "n",
		Cart: []domain.CartLine{
			{ProductID: "laptop-001", Price: fp(1400)}, // tampered
			{ProductID: "mouse-001", Price: fp(25)},
		},
	})
	require.Equal(t, services.KindValidation, kindOf(t, err))

	// no side effects at all
	require.Empty(t, gw.calls)
	require.Equal(t, 10, qtyOf(t, prods, "laptop-001"))
	require.Equal(t, 7, qtyOf(t, prods, "mouse-001"))
	n, err := orders.CountAll()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCheckout_ValidationFailures(t *testing.T) {
	cases := map[string]domain.CheckoutRequest{
		"empty cart":        {Nonce: "n"},
		"missing nonce":     {Cart: []domain.CartLine{{ProductID: "mouse-001"}}},
		"missing productId": {Nonce: "n", Cart: []domain.CartLine{{}}},
		"zero qty":          {Nonce: "n", Cart: []domain.CartLine{{ProductID: "mouse-001", Qty: ip(0)}}},
		"negative qty":      {Nonce: "n", Cart: []domain.CartLine{{ProductID: "mouse-001", Qty: ip(-2)}}},
		"unknown product":   {Nonce: "n", Cart: []domain.CartLine{{ProductID: "ghost-999"}}},
		"duplicate line": {Nonce: "n", Cart: []domain.CartLine{
			{ProductID: "mouse-001"}, {ProductID: "mouse-001"},
		}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			gw := &fakeGateway{result: payment.ChargeResult{Success: true}}
			svc, prods, orders := newCheckout(t, gw)

			_, err := svc.Checkout(context.Background(), "u-alice", req)
			require.Equal(t, services.KindValidation, kindOf(t, err))
			require.Empty(t, gw.calls)
			require.Equal(t, 7, qtyOf(t, prods, "mouse-001"))
			n, err := orders.CountAll()
			require.NoError(t, err)
			require.Zero(t, n)
		})
	}
}

func TestCheckout_InsufficientStockBeforeCharge(t *testing.T) {
	gw := &fakeGateway{result: payment.ChargeResult{Success: true}}
	svc, prods, orders := newCheckout(t, gw)

	_, err := svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "n",
		Cart:  []domain.CartLine{{ProductID: "laptop-001", Price: fp(1500), Qty: ip(50)}},
	})
	require.Equal(t, services.KindInsufficientStock, kindOf(t, err))

	// gateway never invoked, nothing mutated
	require.Empty(t, gw.calls)
	require.Equal(t, 10, qtyOf(t, prods, "laptop-001"))
	n, err := orders.CountAll()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCheckout_GatewayDeclined(t *testing.T) {
	gw := &fakeGateway{result: payment.ChargeResult{Success: false, Message: "card declined"}}
	svc, prods, orders := newCheckout(t, gw)

	_, err := svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "n",
		Cart:  []domain.CartLine{{ProductID: "mouse-001"}},
	})
	require.Equal(t, services.KindPayment, kindOf(t, err))
	require.Len(t, gw.calls, 1)
	require.Equal(t, 7, qtyOf(t, prods, "mouse-001"))
	n, err := orders.CountAll()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCheckout_GatewayUnreachableFailsClosed(t *testing.T) {
	gw := &fakeGateway{err: errors.New("dial tcp: connection refused")}
	svc, prods, orders := newCheckout(t, gw)

	_, err := svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "n",
		Cart:  []domain.CartLine{{ProductID: "mouse-001"}},
	})
	require.Equal(t, services.KindPayment, kindOf(t, err))
	require.Equal(t, 7, qtyOf(t, prods, "mouse-001"))
	n, err := orders.CountAll()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCheckout_RejectionIsRepeatable(t *testing.T) {
	gw := &fakeGateway{result: payment.ChargeResult{Success: true}}
	svc, prods, orders := newCheckout(t, gw)

	req := domain.CheckoutRequest{
		Nonce: "n",
		Cart:  []domain.CartLine{{ProductID: "laptop-001", Price: fp(1400)}},
	}
	for i := 0; i < 3; i++ {
		_, err := svc.Checkout(context.Background(), "u-alice", req)
		require.Equal(t, services.KindValidation, kindOf(t, err))
	}
	require.Empty(t, gw.calls)
	require.Equal(t, 10, qtyOf(t, prods, "laptop-001"))
	n, err := orders.CountAll()
	require.NoError(t, err)
	require.Zero(t, n)
}

// A concurrent buyer takes the last units between the sufficiency pre-check and
// the post-charge decrement. The conditional update must catch it, and the
// decrement already applied for the first line must be reversed.
func TestCheckout_DecrementRaceRollsBack(t *testing.T) {
	db := checkoutDB(t)
	prods := repos.NewProductRepo(db)
	orders := repos.NewOrderRepo(db)

	gw := &fakeGateway{result: payment.ChargeResult{Success: true, TransactionID: "txn-race"}}
	gw.onCharge = func() {
		// stock for the second line vanishes while the charge is in flight
		_, err := db.Exec(`UPDATE products SET qty = 0 WHERE id = 'laptop-001'`)
		require.NoError(t, err)
	}
	svc := services.NewCheckoutService(prods, orders, gw)

	_, err := svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "n",
		Cart: []domain.CartLine{
			{ProductID: "mouse-001", Qty: ip(2)},
			{ProductID: "laptop-001", Qty: ip(1)},
		},
	})
	require.Equal(t, services.KindInsufficientStock, kindOf(t, err))

	// the mouse decrement was rolled back, laptop stayed depleted, no order
	require.Equal(t, 7, qtyOf(t, prods, "mouse-001"))
	require.Equal(t, 0, qtyOf(t, prods, "laptop-001"))
	n, err := orders.CountAll()
	require.NoError(t, err)
	require.Zero(t, n)
}

// Order-ledger write failure after a captured charge must surface as a failure,
// never as success: the client must not believe the checkout worked.
func TestCheckout_OrderWriteFailureIsPersistenceError(t *testing.T) {
	db := checkoutDB(t)
	prods := repos.NewProductRepo(db)
	orders := repos.NewOrderRepo(db)
	_, err := db.Exec(`DROP TABLE order_items`)
	require.NoError(t, err)

	gw := &fakeGateway{result: payment.ChargeResult{Success: true, TransactionID: "txn-orphan"}}
	svc := services.NewCheckoutService(prods, orders, gw)

	_, err = svc.Checkout(context.Background(), "u-alice", domain.CheckoutRequest{
		Nonce: "n",
		Cart:  []domain.CartLine{{ProductID: "mouse-001"}},
	})
	require.Equal(t, services.KindPersistence, kindOf(t, err))
}
