package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Lifecycle:
//
//	Pending ──┬──> InPreparation ──┬──> ReadyForPickup ──> Completed
//	          │                    │          │
//	          └────────────────────┴──────────┴──────────> Cancelled
//
// Which actor may move an order along which edge is decided by the status transition
// engine in the services package; Status itself only knows names, validity and which
// states are terminal. Completed and Cancelled are terminal: nothing changes afterwards.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// In transition requests it also means "no status change requested".
	Unknown Status = iota

	// Pending is the initial status of every new order.
	Pending

	// InPreparation indicates the restaurant has started working on the order.
	InPreparation

	// ReadyForPickup indicates the order waits at the counter. Entering this state
	// notifies the customer.
	ReadyForPickup

	// Completed indicates the customer picked the order up. Terminal.
	Completed

	// Cancelled indicates the restaurant cancelled the order. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their display names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		InPreparation:  "InPreparation",
		ReadyForPickup: "ReadyForPickup",
		Completed:      "Completed",
		Cancelled:      "Cancelled",
	}
}

// getValidStatusCodes returns the wire codes of valid statuses.
func getValidStatusCodes() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		InPreparation:  "in_preparation",
		ReadyForPickup: "ready_for_pickup",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// TerminalStatuses lists the statuses after which an order is immutable.
func TerminalStatuses() []Status {
	return []Status{Completed, Cancelled}
}

// ActiveStatuses lists the non-terminal statuses, the ones shown in "my orders" listings.
func ActiveStatuses() []Status {
	return []Status{Pending, InPreparation, ReadyForPickup}
}

// ParseStatus maps a wire code such as "ready_for_pickup" to a Status.
func ParseStatus(code string) (Status, error) {
	for status, c := range getValidStatusCodes() {
		if c == code {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", code))
}

// Validate checks that the Status is one of the five lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display name, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Code returns the wire code used by the HTTP API, "" for invalid values.
func (s Status) Code() string {
	return getValidStatusCodes()[s]
}

// IsTerminal reports whether no further changes are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}
