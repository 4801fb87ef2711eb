package order_test

import (
	"testing"
	"time"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	tailorID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		&tailorID,
		order.ServiceStitching,
		"three-piece suit",
		1,
		"measurements/v1/abc",
		250.0,
		nil,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with derived number", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.NoError(t, o.Validate())
		assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, o.Number())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.FinalPrice())
		assert.Nil(t, o.FinalFittingDate())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("allows nil tailor until assignment", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(),
			kernel.NewUUID(),
			nil,
			order.ServiceRepair,
			"coat",
			2,
			"measurements/v1/xyz",
			40.0,
			nil,
		)

		require.NoError(t, err)
		assert.Nil(t, o.TailorID())
	})

	t.Run("rejects invalid placement input", func(t *testing.T) {
		customerID := kernel.NewUUID()

		testCases := []struct {
			name        string
			id          kernel.UUID
			customerID  kernel.UUID
			serviceType order.ServiceType
			garment     string
			quantity    int
			ref         string
			price       float64
		}{
			{"zero order id", kernel.UUID{}, customerID, order.ServiceStitching, "suit", 1, "m/1", 10},
			{"zero customer id", kernel.NewUUID(), kernel.UUID{}, order.ServiceStitching, "suit", 1, "m/1", 10},
			{"unknown service type", kernel.NewUUID(), customerID, order.ServiceType("ironing"), "suit", 1, "m/1", 10},
			{"empty garment type", kernel.NewUUID(), customerID, order.ServiceStitching, "  ", 1, "m/1", 10},
			{"zero quantity", kernel.NewUUID(), customerID, order.ServiceStitching, "suit", 0, "m/1", 10},
			{"empty measurement ref", kernel.NewUUID(), customerID, order.ServiceStitching, "suit", 1, "", 10},
			{"negative price", kernel.NewUUID(), customerID, order.ServiceStitching, "suit", 1, "m/1", -1},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := order.NewOrder(tc.id, tc.customerID, nil,
					tc.serviceType, tc.garment, tc.quantity, tc.ref, tc.price, nil)
				require.Error(t, err)
			})
		}
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		tailorID := kernel.NewUUID()
		fitting := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
		finalPrice := 270.0

		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:               id,
			Number:           "ORD-AB12CD34",
			CustomerID:       kernel.NewUUID(),
			TailorID:         &tailorID,
			ServiceType:      order.ServiceAlteration,
			GarmentType:      "dress",
			Quantity:         1,
			EstimatedPrice:   250,
			FinalPrice:       &finalPrice,
			MeasurementRef:   "measurements/v1/abc",
			Status:           order.Ready,
			FinalFittingDate: &fitting,
			CreatedAt:        time.Now().UTC().Add(-time.Hour),
			UpdatedAt:        time.Now().UTC(),
		})

		require.NoError(t, err)
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, "ORD-AB12CD34", o.Number())
		assert.Equal(t, &finalPrice, o.FinalPrice())
		assert.Equal(t, &fitting, o.FinalFittingDate())
	})

	t.Run("rejects corrupt stored status", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:             kernel.NewUUID(),
			CustomerID:     kernel.NewUUID(),
			ServiceType:    order.ServiceRepair,
			GarmentType:    "coat",
			Quantity:       1,
			EstimatedPrice: 10,
			MeasurementRef: "m/1",
			Status:         order.Status(42),
		})

		require.Error(t, err)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_IsOwnedBy(t *testing.T) {
	customerID := kernel.NewUUID()
	tailorID := kernel.NewUUID()

	o, err := order.NewOrder(kernel.NewUUID(), customerID, &tailorID,
		order.ServiceStitching, "suit", 1, "m/1", 100, nil)
	require.NoError(t, err)

	t.Run("bound parties match their roles", func(t *testing.T) {
		assert.True(t, o.IsOwnedBy(customerID, order.RoleCustomer))
		assert.True(t, o.IsOwnedBy(tailorID, order.RoleTailor))
	})

	t.Run("mismatches fail closed", func(t *testing.T) {
		stranger := kernel.NewUUID()

		assert.False(t, o.IsOwnedBy(stranger, order.RoleCustomer))
		assert.False(t, o.IsOwnedBy(stranger, order.RoleTailor))
		assert.False(t, o.IsOwnedBy(customerID, order.RoleTailor))
		assert.False(t, o.IsOwnedBy(tailorID, order.RoleCustomer))
		assert.False(t, o.IsOwnedBy(customerID, order.RoleUnknown))
	})

	t.Run("unbound tailor fails closed", func(t *testing.T) {
		unbound, err := order.NewOrder(kernel.NewUUID(), customerID, nil,
			order.ServiceRepair, "coat", 1, "m/1", 10, nil)
		require.NoError(t, err)

		assert.False(t, unbound.IsOwnedBy(tailorID, order.RoleTailor))
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("walks the full happy path", func(t *testing.T) {
		o := newTestOrder(t)

		for _, target := range []order.Status{
			order.Accepted, order.InProgress, order.Ready, order.Completed,
		} {
			require.NoError(t, o.ChangeStatus(target))
			assert.Equal(t, target, o.Status())
		}

		require.NotNil(t, o.CompletedAt())
	})

	t.Run("records completion timestamp only on completed", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.Accepted))
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("rejects edges outside the graph", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.Completed)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("cancelled is absorbing", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		for _, target := range []order.Status{
			order.Pending, order.Accepted, order.InProgress, order.Ready, order.Completed, order.Cancelled,
		} {
			require.ErrorIs(t, o.ChangeStatus(target), order.ErrInvalidTransition)
		}
	})

	t.Run("completed is absorbing", func(t *testing.T) {
		o := newTestOrder(t)
		for _, target := range []order.Status{order.Accepted, order.InProgress, order.Ready, order.Completed} {
			require.NoError(t, o.ChangeStatus(target))
		}

		require.ErrorIs(t, o.ChangeStatus(order.Cancelled), order.ErrInvalidTransition)
	})
}

func TestOrder_ScheduleFitting(t *testing.T) {
	t.Run("records the fitting date without touching status", func(t *testing.T) {
		o := newTestOrder(t)
		at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, o.ScheduleFitting(at))

		require.NotNil(t, o.FinalFittingDate())
		assert.Equal(t, at, *o.FinalFittingDate())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("rejects the zero time", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.ScheduleFitting(time.Time{}))
	})
}

func TestHistoryEntry(t *testing.T) {
	t.Run("creates a valid entry", func(t *testing.T) {
		orderID := kernel.NewUUID()
		actorID := kernel.NewUUID()

		entry, err := order.NewHistoryEntry(orderID, order.Pending, order.Accepted,
			actorID, order.RoleTailor, "accepted by tailor")

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, orderID, entry.OrderID())
		assert.Equal(t, order.Pending, entry.FromStatus())
		assert.Equal(t, order.Accepted, entry.ToStatus())
		assert.Equal(t, order.RoleTailor, entry.ActorRole())
		assert.Equal(t, "accepted by tailor", entry.Note())
		assert.False(t, entry.OccurredAt().IsZero())
	})

	t.Run("rejects invalid components", func(t *testing.T) {
		orderID := kernel.NewUUID()
		actorID := kernel.NewUUID()

		_, err := order.NewHistoryEntry(kernel.UUID{}, order.Pending, order.Accepted,
			actorID, order.RoleTailor, "")
		require.Error(t, err)

		_, err = order.NewHistoryEntry(orderID, order.Unknown, order.Accepted,
			actorID, order.RoleTailor, "")
		require.Error(t, err)

		_, err = order.NewHistoryEntry(orderID, order.Pending, order.Accepted,
			actorID, order.RoleUnknown, "")
		require.Error(t, err)
	})

	t.Run("zero value entry fails validation", func(t *testing.T) {
		var entry order.HistoryEntry
		require.ErrorIs(t, entry.Validate(), order.ErrHistoryEntryIsNotConstructed)
	})
}
