// Package productrepo is the PostgreSQL product ledger. Stock changes are single
// conditional UPDATE statements, so reservations are atomic per product without
// explicit row locks.
package productrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the ordering core's slice of the catalog table.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity     int             `gorm:"not null;check:chk_products_quantity_non_negative,quantity >= 0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID().Bytes(),
		RestaurantID: p.RestaurantID().Bytes(),
		Name:         p.Name(),
		Price:        p.Price().Amount(),
		Quantity:     p.Quantity(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return product.NewProduct(id, restaurantID, dto.Name, price, dto.Quantity)
}

// toReservation builds the snapshot from the row as returned by the reserving UPDATE.
func toReservation(dto ProductDTO, quantity int) (product.Reservation, error) {
	p, err := toDomain(dto)
	if err != nil {
		return product.Reservation{}, err
	}
	return product.Reservation{
		ProductID:    p.ID(),
		RestaurantID: p.RestaurantID(),
		Name:         p.Name(),
		Price:        p.Price(),
		Quantity:     quantity,
		Remaining:    p.Quantity(),
	}, nil
}
