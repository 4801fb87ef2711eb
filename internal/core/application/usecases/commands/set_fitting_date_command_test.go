package commands_test

import (
	"testing"
	"time"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetFittingDateCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	tailorID := kernel.NewUUID()
	at := time.Now().UTC().Add(72 * time.Hour)

	cmd, err := commands.NewSetFittingDateCommand(orderID, tailorID, at)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, tailorID, cmd.TailorID())
	assert.Equal(t, at, cmd.FittingDate())
}

func TestNewSetFittingDateCommand_ZeroDate(t *testing.T) {
	_, err := commands.NewSetFittingDateCommand(kernel.NewUUID(), kernel.NewUUID(), time.Time{})
	require.Error(t, err)
}

func TestNewSetFittingDateCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewSetFittingDateCommand(kernel.UUID{}, kernel.NewUUID(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
