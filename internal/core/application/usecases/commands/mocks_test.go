package commands_test

import (
	"context"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListActiveByCustomer(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListActiveByRestaurant(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductLedger struct{ mock.Mock }

func (m *MockProductLedger) Reserve(ctx context.Context, id kernel.UUID, qty int) (product.Reservation, error) {
	args := m.Called(ctx, id, qty)
	return args.Get(0).(product.Reservation), args.Error(1)
}

func (m *MockProductLedger) Release(ctx context.Context, id kernel.UUID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

func (m *MockProductLedger) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPrincipalDirectory struct{ mock.Mock }

func (m *MockPrincipalDirectory) RoleOf(ctx context.Context, id kernel.UUID) (kernel.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(kernel.Role), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, events ...kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductLedger() ports.ProductLedger {
	args := m.Called()
	return args.Get(0).(ports.ProductLedger)
}

func (m *MockUoW) PrincipalDirectory() ports.PrincipalDirectory {
	args := m.Called()
	return args.Get(0).(ports.PrincipalDirectory)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockPlacementUoWFactory struct{ mock.Mock }

func (m *MockPlacementUoWFactory) Create() commands.PlacementUoW {
	args := m.Called()
	return args.Get(0).(commands.PlacementUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

func mustPrincipal(role kernel.Role) kernel.Principal {
	p, err := kernel.NewPrincipal(kernel.NewUUID(), role)
	if err != nil {
		panic(err)
	}
	return p
}

func mustMoney(s string) kernel.Money {
	m, err := kernel.MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// storedOrder builds an order as a repository would return it.
func storedOrder(customerID, restaurantID kernel.UUID, status order.Status) *order.Order {
	item, err := order.NewLineItem(kernel.NewUUID(), "Burger", mustMoney("12.50"), 2)
	if err != nil {
		panic(err)
	}
	created := time.Now().UTC().Add(-time.Hour)
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		order.GenerateNumber(),
		customerID,
		restaurantID,
		[]order.LineItem{item},
		mustMoney("25.00"),
		order.Pix,
		status,
		order.Unpaid,
		created,
		created,
		3,
	)
	if err != nil {
		panic(err)
	}
	return o
}
