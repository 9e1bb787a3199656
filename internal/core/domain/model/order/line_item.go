package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// ErrLineItemIsNotConstructed is returned for a zero-value LineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one row of an order: a product with the name and unit price it had when
// the order was placed. It is a value object and is never modified after creation.
type LineItem struct {
	productID kernel.UUID
	name      string
	price     kernel.Money
	quantity  int

	isConstructed bool
}

// NewLineItem validates the snapshot. quantity must be at least 1.
func NewLineItem(productID kernel.UUID, name string, price kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{isConstructed: true}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setPrice(price),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Validate() error {
	if !i.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

func (i LineItem) Name() string {
	return i.name
}

// Price is the unit price at order time.
func (i LineItem) Price() kernel.Money {
	return i.price
}

func (i LineItem) Quantity() int {
	return i.quantity
}

// Subtotal returns price × quantity.
func (i LineItem) Subtotal() kernel.Money {
	return i.price.Multiply(i.quantity)
}

func (i *LineItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	i.productID = id
	return nil
}

func (i *LineItem) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	i.price = price
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
