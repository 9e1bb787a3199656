package product

import "ordering/internal/core/domain/model/kernel"

// Reservation is the result of a successful reserve: the units taken and the product
// data as it was at that moment. Orders copy Name and Price into their line items, so
// later catalog edits never change a placed order.
type Reservation struct {
	ProductID    kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        kernel.Money
	Quantity     int
	// Remaining is the stock left after this reservation.
	Remaining int
}
