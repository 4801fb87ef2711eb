package commands_test

import (
	"testing"
	"time"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetFittingDateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	tailorID := kernel.NewUUID()
	inProgress := restoredOrder(t, orderID, kernel.NewUUID(), tailorID, order.InProgress)
	at := time.Now().UTC().Add(72 * time.Hour)

	cmd, err := commands.NewSetFittingDateCommand(orderID, tailorID, at)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(inProgress, nil).Once(),
		repo.On("SetFittingDate", mock.Anything, orderID, at).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetFittingDateCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, updated.FinalFittingDate())
	assert.Equal(t, at, *updated.FinalFittingDate())
	assert.Equal(t, order.InProgress, updated.Status(), "scheduling must not touch the lifecycle")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetFittingDateCommandHandler_Handle_StrangerIsForbidden(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	inProgress := restoredOrder(t, orderID, kernel.NewUUID(), kernel.NewUUID(), order.InProgress)

	cmd, err := commands.NewSetFittingDateCommand(orderID, kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(inProgress, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetFittingDateCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderAccessForbidden)
	repo.AssertNotCalled(t, "SetFittingDate", mock.Anything, mock.Anything, mock.Anything)
}
