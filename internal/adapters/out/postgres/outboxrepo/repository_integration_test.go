package outboxrepo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/pgtest"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	repo     *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	suite.Require().NoError(postgres_adapter.Migrate(database.DB))
	suite.repo = outboxrepo.NewGormOutboxRepository(database.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.DB.Exec("TRUNCATE TABLE outbox_messages").Error)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_FetchPending_MarkSent() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := readyEvent(base.Add(time.Minute))
	earlier := readyEvent(base)

	suite.Require().NoError(suite.repo.Add(ctx, later, earlier))
	suite.Require().NoError(suite.repo.Add(ctx, earlier), "re-adding a stored event is a no-op")

	pending, err := suite.repo.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(earlier.ID, pending[0].ID)
	suite.Equal(order.ReadyForPickupEventType, pending[0].EventType)
	suite.Equal(earlier.OrderID, pending[0].AggregateID)
	suite.JSONEq(mustJSON(suite.T(), earlier), string(pending[0].Payload))

	suite.Require().NoError(suite.repo.MarkSent(ctx, earlier.ID, time.Now()))

	pending, err = suite.repo.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(later.ID, pending[0].ID)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestFetchPending_SkipsLockedRows() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.repo.Add(ctx, readyEvent(base), readyEvent(base.Add(time.Second))))

	tx := suite.database.DB.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	first, err := outboxrepo.NewGormOutboxRepository(tx).FetchPending(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(first, 1)

	second, err := suite.repo.FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(second, 1, "the row locked by the first relay is skipped")
	suite.NotEqual(first[0].ID, second[0].ID)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkSent_Unknown() {
	err := suite.repo.MarkSent(context.Background(), kernel.NewUUID(), time.Now())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestFetchPending_InvalidLimit() {
	_, err := suite.repo.FetchPending(context.Background(), 0)
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}

func readyEvent(at time.Time) order.ReadyForPickupEvent {
	return order.ReadyForPickupEvent{
		ID:           kernel.NewUUID(),
		OrderID:      kernel.NewUUID(),
		OrderNumber:  order.GenerateNumber(),
		CustomerID:   kernel.NewUUID(),
		RestaurantID: kernel.NewUUID(),
		At:           at,
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
