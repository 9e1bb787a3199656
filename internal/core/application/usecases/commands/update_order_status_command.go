package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand asks to change an order's status, its payment label, or both.
// order.Unknown and order.UnknownPaymentStatus mean "leave unchanged"; whether the
// combination is acceptable is decided by the status transition engine.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	principal     kernel.Principal
	orderID       kernel.UUID
	status        order.Status
	paymentStatus order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand validates the principal and order id.
func NewUpdateOrderStatusCommand(
	principal kernel.Principal,
	orderID kernel.UUID,
	status order.Status,
	paymentStatus order.PaymentStatus,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		status:        status,
		paymentStatus: paymentStatus,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrderID(orderID),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Principal() kernel.Principal {
	return c.principal
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status is the requested status, order.Unknown if none.
func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

// PaymentStatus is the requested payment label, order.UnknownPaymentStatus if none.
func (c UpdateOrderStatusCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

func (c *UpdateOrderStatusCommand) setPrincipal(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return err
	}
	c.principal = principal
	return nil
}

func (c *UpdateOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
