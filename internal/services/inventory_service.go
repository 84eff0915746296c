package services

import (
	"database/sql"

	"pocketshop/internal/domain"
	"pocketshop/internal/repos"
)

type InventoryService struct {
	Prods *repos.ProductRepo
}

func NewInventoryService(prods *repos.ProductRepo) *InventoryService {
	return &InventoryService{Prods: prods}
}

// CheckAvailability converts qty to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID string) (domain.Availability, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		// Unknown product reads as out of stock rather than an error surface.
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case p.Qty >= 5:
		status = "IN_STOCK"
	case p.Qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.Qty}, nil
}
