package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// DefaultOrderNumberAttempts bounds how many order numbers are tried before giving up.
const DefaultOrderNumberAttempts = 5

var (
	// ErrRestaurantIsInvalid is returned when the target of an order is not a known
	// restaurant account.
	ErrRestaurantIsInvalid = errs.NewValueIsInvalidError("restaurantId")
)

// CreateOrderCommandHandler is the order factory: it turns a cart into a persisted
// Pending order, reserving stock for every item as one logical unit.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, order.GenerateNumber, DefaultOrderNumberAttempts, logger)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInsufficientStock):
//	    // nothing was reserved, nothing was stored
//	case err != nil:
//	    return err
//	}
//	fmt.Printf("order %s placed, total %s", o.Number(), o.Total())
type CreateOrderCommandHandler struct {
	uowFactory  PlacementUoWFactory
	numbers     order.NumberGenerator
	maxAttempts int
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates the order factory. A nil generator falls back to
// order.GenerateNumber and a non-positive attempt bound to DefaultOrderNumberAttempts.
func NewCreateOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	numbers order.NumberGenerator,
	maxAttempts int,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if numbers == nil {
		numbers = order.GenerateNumber
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultOrderNumberAttempts
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		numbers:     numbers,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "create_order_handler"),
	}
}

// Handle places the order.
//
// Steps, all inside one unit of work:
//  1. the principal must be a client (ForbiddenError)
//  2. the restaurant must be a known restaurant account (ErrRestaurantIsInvalid)
//  3. every item is reserved in submission order; a failure releases the reservations
//     already made and returns the triggering error (ObjectNotFoundError,
//     InsufficientStockError, or ValueIsInvalidError for a product of another restaurant)
//  4. names and prices are copied into line items and the total is computed
//  5. the order is stored under a fresh number, regenerated on collision
//
// A failure after step 3 also releases every reservation. With a transactional unit of
// work the rollback undoes them as well.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	customer := cmd.Principal()
	if !customer.Is(kernel.RoleClient) {
		return nil, errs.NewForbiddenErrorWithCause(
			"create order",
			fmt.Errorf("role %s cannot place orders", customer.Role()),
		)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := checkRestaurant(ctx, uow.PrincipalDirectory(), cmd.RestaurantID()); err != nil {
		return nil, err
	}

	ledger := uow.ProductLedger()
	reservations, err := h.reserveAll(ctx, ledger, cmd)
	if err != nil {
		return nil, err
	}

	items, err := snapshotItems(reservations)
	if err != nil {
		return nil, h.compensate(ctx, ledger, reservations, err)
	}

	placed, err := h.addWithFreshNumber(ctx, uow.OrderRepository(), customer.ID(), cmd, items)
	if err != nil {
		return nil, h.compensate(ctx, ledger, reservations, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, h.compensate(ctx, ledger, reservations, err)
	}

	return placed, nil
}

func checkRestaurant(ctx context.Context, directory ports.PrincipalDirectory, restaurantID kernel.UUID) error {
	role, err := directory.RoleOf(ctx, restaurantID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrRestaurantIsInvalid
	}
	if err != nil {
		return err
	}
	if role != kernel.RoleRestaurant {
		return ErrRestaurantIsInvalid
	}
	return nil
}

func (h CreateOrderCommandHandler) reserveAll(
	ctx context.Context,
	ledger ports.ProductLedger,
	cmd CreateOrderCommand,
) ([]product.Reservation, error) {
	requested := cmd.Items()
	reservations := make([]product.Reservation, 0, len(requested))

	for _, item := range requested {
		reservation, err := ledger.Reserve(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, h.compensate(ctx, ledger, reservations, err)
		}
		reservations = append(reservations, reservation)

		if !reservation.RestaurantID.IsEqual(cmd.RestaurantID()) {
			return nil, h.compensate(ctx, ledger, reservations, errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("product %s is not sold by restaurant %s", item.ProductID, cmd.RestaurantID()),
			))
		}
	}

	return reservations, nil
}

// compensate releases reservations in reverse order and returns cause unchanged.
// Release failures are logged; the caller's rollback remains authoritative.
func (h CreateOrderCommandHandler) compensate(
	ctx context.Context,
	ledger ports.ProductLedger,
	reservations []product.Reservation,
	cause error,
) error {
	for i := len(reservations) - 1; i >= 0; i-- {
		r := reservations[i]
		if err := ledger.Release(ctx, r.ProductID, r.Quantity); err != nil {
			h.logger.ErrorContext(ctx, "failed to release reservation",
				"productId", r.ProductID.String(),
				"quantity", r.Quantity,
				"cause", cause,
				"error", err,
			)
		}
	}
	return cause
}

func snapshotItems(reservations []product.Reservation) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(reservations))
	for _, r := range reservations {
		item, err := order.NewLineItem(r.ProductID, r.Name, r.Price, r.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (h CreateOrderCommandHandler) addWithFreshNumber(
	ctx context.Context,
	repo ports.OrderRepository,
	customerID kernel.UUID,
	cmd CreateOrderCommand,
	items []order.LineItem,
) (*order.Order, error) {
	var lastErr error

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		candidate, err := order.NewOrder(
			kernel.NewUUID(),
			h.numbers(),
			customerID,
			cmd.RestaurantID(),
			items,
			cmd.PaymentMethod(),
			now(),
		)
		if err != nil {
			return nil, err
		}

		err = repo.Add(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, ports.ErrOrderNumberTaken) {
			return nil, err
		}

		lastErr = err
		h.logger.WarnContext(ctx, "order number already taken, regenerating",
			"orderNumber", candidate.Number().String(),
			"attempt", attempt,
		)
	}

	return nil, lastErr
}

// now is truncated to microseconds, the resolution of PostgreSQL timestamps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
