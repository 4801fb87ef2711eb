package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/confirmation"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CompareAndSwapStatus(
	ctx context.Context,
	orderID kernel.UUID,
	expected order.Status,
	next order.Status,
	entry *order.HistoryEntry,
) (bool, error) {
	args := m.Called(ctx, orderID, expected, next, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListHistory(
	ctx context.Context, orderID kernel.UUID,
) ([]*order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.HistoryEntry), args.Error(1)
}

func (m *MockOrderRepository) SetFittingDate(ctx context.Context, orderID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, orderID, at)
	return args.Error(0)
}

type MockConfirmationRepository struct{ mock.Mock }

func (m *MockConfirmationRepository) Save(ctx context.Context, c *confirmation.DeliveryConfirmation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConfirmationRepository) GetActive(
	ctx context.Context, orderID kernel.UUID,
) (*confirmation.DeliveryConfirmation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*confirmation.DeliveryConfirmation), args.Error(1)
}

func (m *MockConfirmationRepository) RegisterFailedAttempt(
	ctx context.Context, orderID kernel.UUID,
) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func (m *MockConfirmationRepository) Consume(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockConfirmationRepository) PurgeStale(
	ctx context.Context, expiredBefore time.Time,
) (int64, error) {
	args := m.Called(ctx, expiredBefore)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

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

func (m *MockUoW) ConfirmationRepository() ports.ConfirmationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConfirmationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockCodeSender struct{ mock.Mock }

func (m *MockCodeSender) SendDeliveryCode(
	ctx context.Context, orderID kernel.UUID, customerID kernel.UUID, code string,
) error {
	args := m.Called(ctx, orderID, customerID, code)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// restoredOrder builds a persisted-looking order in the given status for
// handler tests that stub repository reads.
func restoredOrder(
	t *testing.T,
	orderID kernel.UUID,
	customerID kernel.UUID,
	tailorID kernel.UUID,
	status order.Status,
) *order.Order {
	t.Helper()

	now := time.Now().UTC()
	restored, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:             orderID,
		CustomerID:     customerID,
		TailorID:       &tailorID,
		ServiceType:    order.ServiceStitching,
		GarmentType:    "sherwani",
		Quantity:       1,
		EstimatedPrice: 450,
		MeasurementRef: "msr-2024-0117",
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	return restored
}
