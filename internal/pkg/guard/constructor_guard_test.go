package guard_test

import (
	"errors"
	"testing"

	"tailoring/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard should be used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type Price struct {
		amount   int
		currency string
		guard    guard.ConstructorGuard
	}

	var errPriceNotConstructed = errors.New("Price must be created via NewPrice")

	newPrice := func(amount int, currency string) (Price, error) {
		if amount < 0 {
			return Price{}, errors.New("amount cannot be negative")
		}
		if currency == "" {
			return Price{}, errors.New("currency is required")
		}
		return Price{
			amount:   amount,
			currency: currency,
			guard:    guard.NewConstructorGuard(),
		}, nil
	}

	validatePrice := func(p Price) error {
		return p.guard.Validate(errPriceNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		price, err := newPrice(100, "USD")

		require.NoError(t, err)
		require.NoError(t, validatePrice(price))
		assert.Equal(t, 100, price.amount)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var price Price

		err := validatePrice(price)

		require.Error(t, err)
		assert.Equal(t, errPriceNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newPrice(-100, "USD")
		require.Error(t, err)

		_, err = newPrice(100, "")
		require.Error(t, err)
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 1000 {
				err := g.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}
