package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/pgtest"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.Require().NoError(postgres_adapter.Migrate(database.DB))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.DB.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsSnapshot() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), stored.Number())
	suite.Equal(o.CustomerID(), stored.CustomerID())
	suite.Equal(o.RestaurantID(), stored.RestaurantID())
	suite.True(o.Total().IsEqual(stored.Total()))
	suite.Equal(order.Pix, stored.PaymentMethod())
	suite.Equal(order.Pending, stored.Status())
	suite.Equal(order.Unpaid, stored.PaymentStatus())
	suite.WithinDuration(o.CreatedAt(), stored.CreatedAt(), time.Microsecond)

	suite.Require().Len(stored.Items(), 2)
	suite.Equal("Burger", stored.Items()[0].Name())
	suite.Equal("12.50", stored.Items()[0].Price().String())
	suite.Equal(2, stored.Items()[0].Quantity())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateNumberIsReported() {
	ctx := context.Background()
	first := suite.newOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.newOrderWithNumber(first.Number(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, ports.ErrOrderNumberTaken)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_IncrementsVersion() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ApplyTransition(order.InPreparation, order.Paid, false, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InPreparation, stored.Status())
	suite.Equal(order.Paid, stored.PaymentStatus())
	suite.Equal(2, stored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ApplyTransition(order.Cancelled, order.Unpaid, false, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ApplyTransition(order.ReadyForPickup, order.Unpaid, true, time.Now().UTC()))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o := suite.newOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListActive_NewestFirstWithoutTerminal() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	older := suite.newOrder(customerID, restaurantID, base.Add(-2*time.Minute))
	newer := suite.newOrder(customerID, restaurantID, base.Add(-time.Minute))
	finished := suite.newOrder(customerID, restaurantID, base)
	otherCustomer := suite.newOrder(kernel.NewUUID(), restaurantID, base)
	for _, o := range []*order.Order{older, newer, finished, otherCustomer} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	loaded, err := suite.repository.Get(ctx, finished.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ApplyTransition(order.Cancelled, order.Unpaid, false, base))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	byCustomer, err := suite.repository.ListActiveByCustomer(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().Len(byCustomer, 2)
	suite.Equal(newer.ID(), byCustomer[0].ID())
	suite.Equal(older.ID(), byCustomer[1].ID())

	byRestaurant, err := suite.repository.ListActiveByRestaurant(ctx, restaurantID)
	suite.Require().NoError(err)
	suite.Len(byRestaurant, 3)

	none, err := suite.repository.ListActiveByCustomer(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_OnlyTerminalOrders() {
	ctx := context.Background()
	o := suite.newOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.repository.Delete(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrInvalidState)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ApplyTransition(order.Cancelled, order.Unpaid, false, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))
	_, err = suite.repository.Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Delete(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(customerID, restaurantID kernel.UUID, at time.Time) *order.Order {
	return suite.newOrderWithNumber(order.GenerateNumber(), customerID, restaurantID, at)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderWithNumber(
	number order.Number,
	customerID, restaurantID kernel.UUID,
	at time.Time,
) *order.Order {
	burgerPrice, err := kernel.MoneyFromString("12.50")
	suite.Require().NoError(err)
	sodaPrice, err := kernel.MoneyFromString("4.00")
	suite.Require().NoError(err)

	burger, err := order.NewLineItem(kernel.NewUUID(), "Burger", burgerPrice, 2)
	suite.Require().NoError(err)
	soda, err := order.NewLineItem(kernel.NewUUID(), "Soda", sodaPrice, 1)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), number, customerID, restaurantID,
		[]order.LineItem{burger, soda}, order.Pix, at.Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
