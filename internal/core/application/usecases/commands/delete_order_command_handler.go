package commands

import (
	"context"
)

// DeleteOrderCommandHandler removes Completed or Cancelled orders on behalf of the
// owning restaurant or an admin.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks Order.ValidateDeletionBy against the stored order, then deletes it. The
// repository re-checks the terminal status in the delete statement itself.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	target, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = target.ValidateDeletionBy(cmd.Principal()); err != nil {
		return err
	}

	if err = repo.Delete(ctx, target.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
