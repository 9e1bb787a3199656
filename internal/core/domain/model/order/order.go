package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a restaurant order: what a customer bought from one
// restaurant, for how much, and where the order is in its lifecycle.
//
// Order follows these invariants:
//   - items is non-empty and never changes after creation
//   - total equals the sum of item subtotals, computed once by NewOrder
//   - number is assigned once at creation and is unique in storage
//   - status changes only through ApplyTransition; Completed and Cancelled are final
//   - version is the optimistic-concurrency token read from storage
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id            kernel.UUID
	number        Number
	customerID    kernel.UUID
	restaurantID  kernel.UUID
	items         []LineItem
	total         kernel.Money
	paymentMethod PaymentMethod
	status        Status
	paymentStatus PaymentStatus
	createdAt     time.Time
	updatedAt     time.Time
	version       int

	domainEvents []kernel.DomainEvent

	isConstructed bool
}

// NewOrder creates a Pending, Unpaid order and computes its total.
//
// Parameters:
//   - id: unique identifier of the order
//   - number: candidate order number (uniqueness is checked by the repository)
//   - customerID: the client placing the order
//   - restaurantID: the restaurant the order is placed against
//   - items: price-snapshotted line items, at least one
//   - paymentMethod: how the customer intends to pay
//   - now: creation time, also used as the first updatedAt
//
// Returns:
//   - *Order: the new aggregate with version 1
//   - error: every validation failure, joined
//
// Example:
//
//	item, _ := order.NewLineItem(productID, "Burger", price, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(),
//	    customerID, restaurantID, []order.LineItem{item}, order.Pix, time.Now())
func NewOrder(
	id kernel.UUID,
	number Number,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []LineItem,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: Unpaid,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.total = sumSubtotals(o.items)
	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is kept as is: it is a
// snapshot and is never recomputed.
func RestoreOrder(
	id kernel.UUID,
	number Number,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []LineItem,
	total kernel.Money,
	paymentMethod PaymentMethod,
	status Status,
	paymentStatus PaymentStatus,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setTotal(total),
		o.setPaymentMethod(paymentMethod),
		o.setStatus(status),
		o.setPaymentStatus(paymentStatus),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the concurrency token the order was loaded with. Repositories only write
// back if storage still holds this version.
func (o *Order) Version() int {
	return o.version
}

// IsOwnedBy reports whether the principal is the order's customer (acting as client)
// or its restaurant (acting as restaurant). Admins own nothing.
func (o *Order) IsOwnedBy(principal kernel.Principal) bool {
	switch principal.Role() {
	case kernel.RoleClient:
		return o.customerID.IsEqual(principal.ID())
	case kernel.RoleRestaurant:
		return o.restaurantID.IsEqual(principal.ID())
	case kernel.RoleAdmin, kernel.UnknownRole:
		return false
	default:
		return false
	}
}

// ApplyTransition writes an outcome decided by the status transition engine.
//
// Parameters:
//   - status: the new lifecycle status (may equal the current one for payment-only updates)
//   - paymentStatus: the new payment label
//   - notify: whether the customer must be told the order is ready; records a
//     ReadyForPickupEvent
//   - now: the modification time
//
// Returns an InvalidStateError if the order is already terminal, so an outcome computed
// for a stale copy can never reopen a finished order.
func (o *Order) ApplyTransition(status Status, paymentStatus PaymentStatus, notify bool, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status.String())
	}
	if err := errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.updatedAt = now

	if notify {
		o.raiseDomainEvent(ReadyForPickupEvent{
			ID:           kernel.NewUUID(),
			OrderID:      o.id,
			OrderNumber:  o.number,
			CustomerID:   o.customerID,
			RestaurantID: o.restaurantID,
			At:           now,
		})
	}
	return nil
}

// ValidateDeletionBy enforces who may delete the order and when.
//
// Returns:
//   - ForbiddenError unless the principal is an admin or the owning restaurant
//   - InvalidStateError unless the order is Completed or Cancelled
//   - nil when deletion is allowed
func (o *Order) ValidateDeletionBy(principal kernel.Principal) error {
	if err := principal.Validate(); err != nil {
		return err
	}

	isOwningRestaurant := principal.Is(kernel.RoleRestaurant) && o.restaurantID.IsEqual(principal.ID())
	if !principal.Is(kernel.RoleAdmin) && !isOwningRestaurant {
		return errs.NewForbiddenError("delete order")
	}

	if !o.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause(
			"order",
			o.status.String(),
			errors.New("only completed or cancelled orders can be deleted"),
		)
	}
	return nil
}

// DomainEvents returns the events recorded since the order was loaded.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.domainEvents))
	copy(events, o.domainEvents)
	return events
}

// ClearDomainEvents is called once the events are safely stored in the outbox.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raiseDomainEvent(event kernel.DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func sumSubtotals(items []LineItem) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d: %w", i, err))
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("total", err)
	}
	o.total = total
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
