package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderItemRequest is one requested cart line: a product and how many units.
type OrderItemRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a customer's request to place an order with one
// restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(principal, restaurantID, order.Pix, []OrderItemRequest{
//	    {ProductID: burgerID, Quantity: 2},
//	    {ProductID: sodaID, Quantity: 1},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	principal     kernel.Principal
	restaurantID  kernel.UUID
	paymentMethod order.PaymentMethod
	items         []OrderItemRequest

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of the request: a valid principal and
// restaurant id, a supported payment method, and at least one item with a positive
// quantity. Role checks happen in the handler.
func NewCreateOrderCommand(
	principal kernel.Principal,
	restaurantID kernel.UUID,
	paymentMethod order.PaymentMethod,
	items []OrderItemRequest,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setRestaurantID(restaurantID),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Principal() kernel.Principal {
	return c.principal
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Items returns the requested lines in submission order.
func (c CreateOrderCommand) Items() []OrderItemRequest {
	items := make([]OrderItemRequest, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setPrincipal(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return err
	}
	c.principal = principal
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("items", fmt.Errorf("item %d: productId: %w", i, err))
		}
		if item.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %d: quantity %d is not greater than 0", i, item.Quantity))
		}
	}

	c.items = make([]OrderItemRequest, len(items))
	copy(c.items, items)
	return nil
}
