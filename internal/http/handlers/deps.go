package handlers

import (
	"pocketshop/internal/config"
	"pocketshop/internal/payment"
	"pocketshop/internal/repos"
	"pocketshop/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	CheckoutHandler  *CheckoutHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService, gw payment.Gateway) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	invSvc := services.NewInventoryService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(prodRepo, orderRepo, gw)

	return &Deps{
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Repo: orderRepo},
		CheckoutHandler:  &CheckoutHandler{Checkout: checkoutSvc},
		AdminHandler:     &AdminHandler{OrderRepo: orderRepo, Prods: prodRepo},
	}
}
