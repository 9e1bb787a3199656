package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// UpdateOrderStatusCommandHandler runs the status transition engine against a stored
// order and writes the outcome back with an optimistic version check, so two
// concurrent updates of the same order cannot both succeed from the same version.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, services.NewStatusTransitionEngine())
//	cmd, _ := NewUpdateOrderStatusCommand(restaurant, orderID, order.ReadyForPickup, order.UnknownPaymentStatus)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // someone else changed the order first; reload and retry
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.StatusTransitionEngine
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.StatusTransitionEngine,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle loads the order, evaluates the request for the principal, applies the outcome
// and persists it. A ReadyForPickup outcome records an event that the unit of work
// stores in the outbox on commit.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	principal := cmd.Principal()
	outcome, err := h.engine.Evaluate(services.TransitionRequest{
		Current:                current.Status(),
		CurrentPaymentStatus:   current.PaymentStatus(),
		RequestedStatus:        cmd.Status(),
		RequestedPaymentStatus: cmd.PaymentStatus(),
		Actor:                  principal.Role(),
		IsOwner:                current.IsOwnedBy(principal),
	})
	if err != nil {
		return nil, err
	}

	if err = current.ApplyTransition(outcome.Status, outcome.PaymentStatus, outcome.Notify, now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}
