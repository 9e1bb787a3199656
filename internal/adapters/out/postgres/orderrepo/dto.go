// Package orderrepo persists order aggregates with GORM. Line items are stored as a
// jsonb snapshot on the order row: they never change after creation and are always
// read together with their order.
package orderrepo

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored as their wire codes so that ad-hoc SQL stays readable.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber   string          `gorm:"type:varchar(16);not null;uniqueIndex:idx_orders_order_number"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_customer_status,priority:1"`
	RestaurantID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_restaurant_status,priority:1"`
	Items         []LineItemDTO   `gorm:"type:jsonb;not null;serializer:json"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(32);not null"`
	Status        string          `gorm:"type:varchar(32);not null;index:idx_orders_customer_status,priority:2;index:idx_orders_restaurant_status,priority:2"` //nolint:lll
	PaymentStatus string          `gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version       int             `gorm:"not null;default:1"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one element of the items jsonb column.
type LineItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, LineItemDTO{
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Price:     item.Price().Amount(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		OrderNumber:   o.Number().String(),
		CustomerID:    o.CustomerID().Bytes(),
		RestaurantID:  o.RestaurantID().Bytes(),
		Items:         items,
		TotalAmount:   o.Total().Amount(),
		PaymentMethod: o.PaymentMethod().Code(),
		Status:        o.Status().Code(),
		PaymentStatus: o.PaymentStatus().Code(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder; the stored total is kept as is.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for i, raw := range dto.Items {
		item, itemErr := lineItemToDomain(raw)
		if itemErr != nil {
			return nil, fmt.Errorf("order %s item %d: %w", dto.ID, i, itemErr)
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		order.Number(dto.OrderNumber),
		customerID,
		restaurantID,
		items,
		total,
		method,
		status,
		paymentStatus,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	)
}

func lineItemToDomain(dto LineItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(productID, dto.Name, price, dto.Quantity)
}

func statusCodes(statuses []order.Status) []string {
	codes := make([]string, 0, len(statuses))
	for _, s := range statuses {
		codes = append(codes, s.Code())
	}
	return codes
}
