package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
)

// ProductLedger is the stock side of the catalog. Reserve is the only way the ordering
// core takes units out of stock and must be atomic per product: two concurrent calls
// can never both succeed on the last unit, and quantity never goes below zero.
type ProductLedger interface {
	// Reserve takes quantity units of the product.
	//
	// Returns:
	//   - the Reservation (name and price snapshot, units left) on success
	//   - ObjectNotFoundError if the product does not exist
	//   - InsufficientStockError with the available quantity otherwise
	Reserve(ctx context.Context, productID kernel.UUID, quantity int) (product.Reservation, error)

	// Release gives back units taken by Reserve. It is the compensation step of a
	// failed order placement.
	Release(ctx context.Context, productID kernel.UUID, quantity int) error

	// Get reads a product without changing it.
	Get(ctx context.Context, productID kernel.UUID) (*product.Product, error)
}
