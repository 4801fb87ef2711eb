package queries_test

import (
	"context"
	"testing"
	"time"

	"tailoring/internal/adapters/out/postgres/orderrepo"
	"tailoring/internal/core/application/usecases/queries"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (*mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetOrderHistoryQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderHistoryQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.HistoryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderHistoryQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_history").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) placeOrder(
	customerID kernel.UUID, tailorID kernel.UUID,
) *order.Order {
	placed, err := order.NewOrder(
		kernel.NewUUID(), customerID, &tailorID,
		order.ServiceEmbroidery, "kurta", 1, "msr-9", 60, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), placed))
	return placed
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) transition(
	o *order.Order, from, to order.Status, actorID kernel.UUID, role order.Role, note string,
) {
	entry, err := order.NewHistoryEntry(o.ID(), from, to, actorID, role, note)
	suite.Require().NoError(err)

	swapped, err := suite.orderRepo.CompareAndSwapStatus(context.Background(), o.ID(), from, to, entry)
	suite.Require().NoError(err)
	suite.Require().True(swapped)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_UntouchedOrder_ReturnsEmptySlice() {
	customerID := kernel.NewUUID()
	placed := suite.placeOrder(customerID, kernel.NewUUID())

	query, err := queries.NewGetOrderHistoryQuery(placed.ID(), customerID, order.RoleCustomer)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_ReturnsTrailOldestFirst() {
	customerID := kernel.NewUUID()
	tailorID := kernel.NewUUID()
	placed := suite.placeOrder(customerID, tailorID)

	suite.transition(placed, order.Pending, order.Accepted, tailorID, order.RoleTailor, "fabric in stock")
	suite.transition(placed, order.Accepted, order.InProgress, tailorID, order.RoleTailor, "")
	suite.transition(placed, order.InProgress, order.Ready, tailorID, order.RoleTailor, "")

	query, err := queries.NewGetOrderHistoryQuery(placed.ID(), tailorID, order.RoleTailor)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal(order.Pending, result[0].FromStatus)
	suite.Equal(order.Accepted, result[0].ToStatus)
	suite.Equal("fabric in stock", result[0].Note)
	suite.Equal(order.Accepted, result[1].FromStatus)
	suite.Equal(order.InProgress, result[1].ToStatus)
	suite.Equal(order.InProgress, result[2].FromStatus)
	suite.Equal(order.Ready, result[2].ToStatus)
	suite.True(result[0].ActorID.IsEqual(tailorID))
	suite.Equal(order.RoleTailor, result[0].ActorRole)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_CustomerMayReadToo() {
	customerID := kernel.NewUUID()
	tailorID := kernel.NewUUID()
	placed := suite.placeOrder(customerID, tailorID)
	suite.transition(placed, order.Pending, order.Accepted, tailorID, order.RoleTailor, "")

	query, err := queries.NewGetOrderHistoryQuery(placed.ID(), customerID, order.RoleCustomer)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result, 1)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_StrangerIsForbidden() {
	placed := suite.placeOrder(kernel.NewUUID(), kernel.NewUUID())

	query, err := queries.NewGetOrderHistoryQuery(placed.ID(), kernel.NewUUID(), order.RoleCustomer)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, queries.ErrHistoryAccessForbidden)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_WrongRoleIsForbidden() {
	customerID := kernel.NewUUID()
	placed := suite.placeOrder(customerID, kernel.NewUUID())

	// the customer exists on the order, but not as its tailor
	query, err := queries.NewGetOrderHistoryQuery(placed.ID(), customerID, order.RoleTailor)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, queries.ErrHistoryAccessForbidden)
}

func (suite *GetOrderHistoryQueryHandlerTestSuite) TestHandle_UnknownOrder() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID(), kernel.NewUUID(), order.RoleCustomer)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderHistoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderHistoryQueryHandlerTestSuite))
}
