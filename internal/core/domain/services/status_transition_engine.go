package services

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// TransitionRequest describes a requested change to an order.
//
// RequestedStatus and RequestedPaymentStatus use their Unknown zero values to mean
// "not requested"; at least one of them must be set.
type TransitionRequest struct {
	Current                order.Status
	CurrentPaymentStatus   order.PaymentStatus
	RequestedStatus        order.Status
	RequestedPaymentStatus order.PaymentStatus
	Actor                  kernel.Role
	// IsOwner is true when the actor is the order's customer (clients) or its
	// restaurant (restaurants).
	IsOwner bool
}

// TransitionOutcome is what the order must become. Notify asks for a customer
// notification.
type TransitionOutcome struct {
	Status        order.Status
	PaymentStatus order.PaymentStatus
	Notify        bool
}

// transitionEdge is one allowed target status for an actor.
type transitionEdge struct {
	// from reports whether the edge may be taken from the current status.
	from func(order.Status) bool
	// forcePayment, when set, overrides the payment status.
	forcePayment order.PaymentStatus
	// notify asks for a customer notification when the status actually changes.
	notify bool
}

// rolePolicy is everything one role may do to an order it owns.
type rolePolicy struct {
	edges         map[order.Status]transitionEdge
	canSetPayment bool
}

// StatusTransitionEngine decides which status and payment changes an actor may make.
// It is a pure function of its inputs and is safe for concurrent use.
//
// Default policy:
//
//	actor       | allowed from                | target(s)                               | side effect
//	client      | ReadyForPickup              | Completed                               | payment forced to Paid
//	restaurant  | any non-terminal status     | InPreparation, ReadyForPickup, Cancelled | ReadyForPickup notifies the customer
//	restaurant  | any non-terminal status     | payment status only                     | none
//
// Restaurants are deliberately not held to a forward-only order: they may move an
// order back from ReadyForPickup to InPreparation, for example.
type StatusTransitionEngine struct {
	policies map[kernel.Role]rolePolicy
}

// NewStatusTransitionEngine returns an engine with the default restaurant-ordering policy.
func NewStatusTransitionEngine() StatusTransitionEngine {
	anyActive := func(s order.Status) bool { return !s.IsTerminal() }
	only := func(want order.Status) func(order.Status) bool {
		return func(s order.Status) bool { return s == want }
	}

	return StatusTransitionEngine{
		policies: map[kernel.Role]rolePolicy{
			kernel.RoleClient: {
				edges: map[order.Status]transitionEdge{
					order.Completed: {from: only(order.ReadyForPickup), forcePayment: order.Paid},
				},
			},
			kernel.RoleRestaurant: {
				edges: map[order.Status]transitionEdge{
					order.InPreparation:  {from: anyActive},
					order.ReadyForPickup: {from: anyActive, notify: true},
					order.Cancelled:      {from: anyActive},
				},
				canSetPayment: true,
			},
		},
	}
}

// Evaluate applies the policy to a request.
//
// Checks run in this order:
//  1. nothing requested: ValueIsRequiredError
//  2. a requested value that is not a real status or payment label: ValueIsInvalidError
//  3. no policy for the role, or the actor does not own the order: ForbiddenError
//  4. a payment change by a role without payment rights: ForbiddenError
//  5. the order is terminal and the role has payment rights: InvalidStateError
//  6. a target status outside the role's edges, or not reachable from Current: ForbiddenError
//
// A client acting on a Completed or Cancelled order therefore gets ForbiddenError.
//
// Returns the resulting status, payment status and whether to notify the customer.
func (e StatusTransitionEngine) Evaluate(req TransitionRequest) (TransitionOutcome, error) {
	statusRequested := req.RequestedStatus != order.Unknown
	paymentRequested := req.RequestedPaymentStatus != order.UnknownPaymentStatus

	if !statusRequested && !paymentRequested {
		return TransitionOutcome{}, errs.NewValueIsRequiredError("status or paymentStatus")
	}
	if statusRequested {
		if err := req.RequestedStatus.Validate(); err != nil {
			return TransitionOutcome{}, err
		}
	}
	if paymentRequested {
		if err := req.RequestedPaymentStatus.Validate(); err != nil {
			return TransitionOutcome{}, err
		}
	}

	policy, ok := e.policies[req.Actor]
	if !ok || !req.IsOwner {
		return TransitionOutcome{}, errs.NewForbiddenError("update order status")
	}

	if paymentRequested && !policy.canSetPayment {
		return TransitionOutcome{}, errs.NewForbiddenErrorWithCause(
			"update payment status",
			fmt.Errorf("%s may not change the payment status", req.Actor),
		)
	}

	// Roles without payment rights only have their single edge; a terminal order is
	// off that edge and is rejected below like any other source status.
	if req.Current.IsTerminal() && policy.canSetPayment {
		return TransitionOutcome{}, errs.NewInvalidStateError("order", req.Current.String())
	}

	outcome := TransitionOutcome{
		Status:        req.Current,
		PaymentStatus: req.CurrentPaymentStatus,
	}
	if paymentRequested {
		outcome.PaymentStatus = req.RequestedPaymentStatus
	}

	if !statusRequested {
		return outcome, nil
	}

	edge, ok := policy.edges[req.RequestedStatus]
	if !ok || !edge.from(req.Current) {
		return TransitionOutcome{}, errs.NewForbiddenErrorWithCause(
			"update order status",
			fmt.Errorf("%s may not move an order from %s to %s", req.Actor, req.Current, req.RequestedStatus),
		)
	}

	outcome.Status = req.RequestedStatus
	if edge.forcePayment != order.UnknownPaymentStatus {
		outcome.PaymentStatus = edge.forcePayment
	}
	outcome.Notify = edge.notify && req.Current != req.RequestedStatus

	return outcome, nil
}
