package product

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product did not come from NewProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product is the ordering core's view of a catalog item: enough to price a line item
// and to track how many units are left. Catalog management (names, images, prices)
// belongs to another service; the core only ever changes quantity.
//
// Invariants:
//   - quantity is never negative
//   - a reservation either takes the whole requested quantity or nothing
type Product struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	name         string
	price        kernel.Money
	quantity     int

	isConstructed bool
}

// NewProduct builds a Product from catalog data.
//
// Parameters:
//   - id: product identifier
//   - restaurantID: the restaurant that sells the product
//   - name: display name, copied into line items at order time
//   - price: current unit price
//   - quantity: units in stock (zero or more)
func NewProduct(id, restaurantID kernel.UUID, name string, price kernel.Money, quantity int) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setRestaurantID(restaurantID),
		p.setName(name),
		p.setPrice(price),
		p.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) RestaurantID() kernel.UUID {
	return p.restaurantID
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() kernel.Money {
	return p.price
}

// Quantity returns the units currently in stock.
func (p *Product) Quantity() int {
	return p.quantity
}

// Reserve takes quantity units out of stock and returns a Reservation carrying the
// price and name snapshot for the order line.
//
// Returns an InsufficientStockError naming the available quantity when
// stock < quantity; stock is left untouched in that case. Callers are responsible for
// serializing concurrent Reserve calls on the same Product.
func (p *Product) Reserve(quantity int) (Reservation, error) {
	if quantity <= 0 {
		return Reservation{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if p.quantity < quantity {
		return Reservation{}, errs.NewInsufficientStockError(p.id.String(), p.name, quantity, p.quantity)
	}

	p.quantity -= quantity
	return p.reservation(quantity), nil
}

// Release returns previously reserved units to stock.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	p.quantity += quantity
	return nil
}

func (p *Product) reservation(quantity int) Reservation {
	return Reservation{
		ProductID:    p.id,
		RestaurantID: p.restaurantID,
		Name:         p.name,
		Price:        p.price,
		Quantity:     quantity,
		Remaining:    p.quantity,
	}
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	p.restaurantID = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	p.price = price
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	p.quantity = quantity
	return nil
}
