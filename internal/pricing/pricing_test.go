package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePrice(t *testing.T) {
	t.Run("applies discount", func(t *testing.T) {
		price, err := EffectivePrice(100, 10)
		require.NoError(t, err)
		assert.InDelta(t, 90.0, price, 1e-9)
	})

	t.Run("zero discount returns base price", func(t *testing.T) {
		price, err := EffectivePrice(49.99, 0)
		require.NoError(t, err)
		assert.InDelta(t, 49.99, price, 1e-9)
	})

	t.Run("full discount returns zero", func(t *testing.T) {
		price, err := EffectivePrice(80, 100)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, price, 1e-9)
	})

	t.Run("matches formula across the discount range", func(t *testing.T) {
		base := 250.0
		for d := 0; d <= 100; d += 5 {
			price, err := EffectivePrice(base, float64(d))
			require.NoError(t, err)
			assert.InDelta(t, base*(1-float64(d)/100), price, 1e-9)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := EffectivePrice(-1, 10)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("rejects out-of-range discount", func(t *testing.T) {
		_, err := EffectivePrice(100, -5)
		assert.ErrorIs(t, err, ErrInvalidDiscount)

		_, err = EffectivePrice(100, 101)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})
}

func TestDisplayPrice(t *testing.T) {
	t.Run("rounds to two decimals", func(t *testing.T) {
		// 33.33 * 0.85 = 28.3305
		price, err := DisplayPrice(33.33, 15)
		require.NoError(t, err)
		assert.InDelta(t, 28.33, price, 1e-9)
	})

	t.Run("ten percent off a round price", func(t *testing.T) {
		price, err := DisplayPrice(100, 10)
		require.NoError(t, err)
		assert.InDelta(t, 90.00, price, 1e-9)
	})
}

func TestLineTotal(t *testing.T) {
	t.Run("multiplies price by quantity", func(t *testing.T) {
		total, err := LineTotal(12.5, 4)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, total, 1e-9)
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		_, err := LineTotal(12.5, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := LineTotal(-0.01, 1)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})
}

func TestConfirmationTotal(t *testing.T) {
	// Unit price rounds first, then multiplies: 28.33 * 3, not 28.3305 * 3
	total, err := ConfirmationTotal(33.33, 15, 3)
	require.NoError(t, err)
	assert.InDelta(t, 84.99, total, 1e-9)
}
