package commands_test

import (
	"testing"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestTransitionCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	actorID := kernel.NewUUID()

	cmd, err := commands.NewRequestTransitionCommand(orderID, actorID,
		order.RoleTailor, order.Accepted, "fabric in stock")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, actorID, cmd.ActorID())
	assert.Equal(t, order.RoleTailor, cmd.ActorRole())
	assert.Equal(t, order.Accepted, cmd.TargetStatus())
	assert.Equal(t, "fabric in stock", cmd.Note())
}

func TestNewRequestTransitionCommand_EmptyNoteIsAllowed(t *testing.T) {
	cmd, err := commands.NewRequestTransitionCommand(kernel.NewUUID(), kernel.NewUUID(),
		order.RoleCustomer, order.Cancelled, "")
	require.NoError(t, err)
	assert.Empty(t, cmd.Note())
}

func TestNewRequestTransitionCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(kernel.UUID{}, kernel.NewUUID(),
		order.RoleTailor, order.Accepted, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewRequestTransitionCommand_UnknownRole(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(kernel.NewUUID(), kernel.NewUUID(),
		order.RoleUnknown, order.Accepted, "")
	require.Error(t, err)
}

func TestNewRequestTransitionCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewRequestTransitionCommand(kernel.NewUUID(), kernel.NewUUID(),
		order.RoleTailor, order.Unknown, "")
	require.Error(t, err)
}

func TestRequestTransitionCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.RequestTransitionCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRequestTransitionCommandIsNotConstructed)
}
