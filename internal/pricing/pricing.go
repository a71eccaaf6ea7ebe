// Package pricing is the single source of truth for discount math. Catalog
// cards, product detail, cart rows and purchase confirmations all derive
// their amounts here so the displayed price never drifts between views.
package pricing

import (
	"errors"
	"math"
)

var (
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// EffectivePrice computes the price after applying the discount percentage,
// at full float precision. Line-total math uses this value; display paths
// round it via Round2.
func EffectivePrice(basePrice, discountPct float64) (float64, error) {
	if basePrice < 0 {
		return 0, ErrNegativePrice
	}
	if discountPct < 0 || discountPct > 100 {
		return 0, ErrInvalidDiscount
	}
	return basePrice * (1 - discountPct/100), nil
}

// DisplayPrice is the effective price rounded to 2 decimal places
func DisplayPrice(basePrice, discountPct float64) (float64, error) {
	price, err := EffectivePrice(basePrice, discountPct)
	if err != nil {
		return 0, err
	}
	return Round2(price), nil
}

// LineTotal computes price * quantity for a cart line
func LineTotal(price float64, quantity int) (float64, error) {
	if price < 0 {
		return 0, ErrNegativePrice
	}
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	return price * float64(quantity), nil
}

// ConfirmationTotal is the amount quoted in the purchase confirmation
// prompt: the display-rounded unit price times the quantity.
func ConfirmationTotal(basePrice, discountPct float64, quantity int) (float64, error) {
	unit, err := DisplayPrice(basePrice, discountPct)
	if err != nil {
		return 0, err
	}
	return LineTotal(unit, quantity)
}

// Round2 rounds to 2 decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
