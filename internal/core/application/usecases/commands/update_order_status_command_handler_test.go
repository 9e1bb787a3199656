package commands_test

import (
	"errors"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderUoW(repo *MockOrderRepository) (*MockUoW, *MockOrderUoWFactory) {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	principal := mustPrincipal(kernel.RoleRestaurant)
	id := kernel.NewUUID()

	cmd, err := commands.NewUpdateOrderStatusCommand(principal, id, order.ReadyForPickup, order.UnknownPaymentStatus)
	require.NoError(t, err)
	assert.Equal(t, principal, cmd.Principal())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.ReadyForPickup, cmd.Status())
	assert.Equal(t, order.UnknownPaymentStatus, cmd.PaymentStatus())

	_, err = commands.NewUpdateOrderStatusCommand(principal, kernel.UUID{}, order.ReadyForPickup, order.Paid)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUpdateOrderStatusCommandHandler_Handle_ReadyForPickupNotifies(t *testing.T) {
	ctx := t.Context()
	restaurant := mustPrincipal(kernel.RoleRestaurant)
	current := storedOrder(kernel.NewUUID(), restaurant.ID(), order.InPreparation)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once(),
		repo.On("Update", ctx, current).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewUpdateOrderStatusCommand(restaurant, current.ID(), order.ReadyForPickup, order.UnknownPaymentStatus)
	require.NoError(t, err)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, services.NewStatusTransitionEngine())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, updated.Status())
	assert.Equal(t, order.Unpaid, updated.PaymentStatus())

	events := updated.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, order.ReadyForPickupEventType, events[0].EventType())
	assert.Equal(t, current.ID(), events[0].AggregateID())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ClientCompletesAndPays(t *testing.T) {
	ctx := t.Context()
	client := mustPrincipal(kernel.RoleClient)
	current := storedOrder(client.ID(), kernel.NewUUID(), order.ReadyForPickup)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(client, current.ID(), order.Completed, order.UnknownPaymentStatus)
	require.NoError(t, err)

	updated, err := commands.NewUpdateOrderStatusCommandHandler(factory, services.NewStatusTransitionEngine()).
		Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, updated.Status())
	assert.Equal(t, order.Paid, updated.PaymentStatus())
	assert.Empty(t, updated.DomainEvents())
}

func TestUpdateOrderStatusCommandHandler_Handle_Rejections(t *testing.T) {
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	owner, err := kernel.NewPrincipal(restaurantID, kernel.RoleRestaurant)
	require.NoError(t, err)
	client, err := kernel.NewPrincipal(customerID, kernel.RoleClient)
	require.NoError(t, err)

	tests := []struct {
		name      string
		principal kernel.Principal
		current   order.Status
		status    order.Status
		payment   order.PaymentStatus
		wantErr   error
	}{
		{"other restaurant", mustPrincipal(kernel.RoleRestaurant), order.Pending, order.InPreparation, order.UnknownPaymentStatus, errs.ErrForbidden},
		{"client cannot prepare", client, order.Pending, order.InPreparation, order.UnknownPaymentStatus, errs.ErrForbidden},
		{"client completes too early", client, order.InPreparation, order.Completed, order.UnknownPaymentStatus, errs.ErrForbidden},
		{"client cannot set payment", client, order.ReadyForPickup, order.UnknownPaymentStatus, order.Paid, errs.ErrForbidden},
		{"admin cannot change status", mustPrincipal(kernel.RoleAdmin), order.Pending, order.Cancelled, order.UnknownPaymentStatus, errs.ErrForbidden},
		{"terminal order", owner, order.Completed, order.InPreparation, order.UnknownPaymentStatus, errs.ErrInvalidState},
		{"client on cancelled order", client, order.Cancelled, order.Completed, order.UnknownPaymentStatus, errs.ErrForbidden},
		{"nothing requested", owner, order.Pending, order.Unknown, order.UnknownPaymentStatus, errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			current := storedOrder(customerID, restaurantID, tt.current)

			repo := new(MockOrderRepository)
			uow, factory := newOrderUoW(repo)
			uow.On("Begin", ctx).Return(nil).Once()
			repo.On("Get", ctx, current.ID()).Return(current, nil).Once()

			cmd, err := commands.NewUpdateOrderStatusCommand(tt.principal, current.ID(), tt.status, tt.payment)
			require.NoError(t, err)

			_, err = commands.NewUpdateOrderStatusCommandHandler(factory, services.NewStatusTransitionEngine()).
				Handle(ctx, cmd)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.current, current.Status())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id)).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(mustPrincipal(kernel.RoleRestaurant), id, order.Cancelled, order.UnknownPaymentStatus)
	require.NoError(t, err)

	_, err = commands.NewUpdateOrderStatusCommandHandler(factory, services.NewStatusTransitionEngine()).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateOrderStatusCommandHandler_Handle_LostVersionRace(t *testing.T) {
	ctx := t.Context()
	restaurant := mustPrincipal(kernel.RoleRestaurant)
	current := storedOrder(kernel.NewUUID(), restaurant.ID(), order.Pending)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(errs.NewConflictError("version")).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(restaurant, current.ID(), order.InPreparation, order.UnknownPaymentStatus)
	require.NoError(t, err)

	_, err = commands.NewUpdateOrderStatusCommandHandler(factory, services.NewStatusTransitionEngine()).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	restaurant := mustPrincipal(kernel.RoleRestaurant)
	current := storedOrder(kernel.NewUUID(), restaurant.ID(), order.Pending)

	repo := new(MockOrderRepository)
	uow, factory := newOrderUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()

	cmd, err := commands.NewUpdateOrderStatusCommand(restaurant, current.ID(), order.Unknown, order.Paid)
	require.NoError(t, err)

	_, err = commands.NewUpdateOrderStatusCommandHandler(factory, services.NewStatusTransitionEngine()).Handle(ctx, cmd)
	require.EqualError(t, err, "commit error")
}
