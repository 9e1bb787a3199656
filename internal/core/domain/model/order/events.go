package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// ReadyForPickupEventType is the outbox/message type of ReadyForPickupEvent.
const ReadyForPickupEventType = "order.ready_for_pickup"

// ReadyForPickupEvent is recorded when a restaurant marks an order ready. The relay
// turns it into a customer notification.
type ReadyForPickupEvent struct {
	ID           kernel.UUID `json:"eventId"`
	OrderID      kernel.UUID `json:"orderId"`
	OrderNumber  Number      `json:"orderNumber"`
	CustomerID   kernel.UUID `json:"customerId"`
	RestaurantID kernel.UUID `json:"restaurantId"`
	At           time.Time   `json:"occurredAt"`
}

func (e ReadyForPickupEvent) EventID() kernel.UUID {
	return e.ID
}

func (e ReadyForPickupEvent) EventType() string {
	return ReadyForPickupEventType
}

func (e ReadyForPickupEvent) AggregateID() kernel.UUID {
	return e.OrderID
}

func (e ReadyForPickupEvent) OccurredAt() time.Time {
	return e.At
}
