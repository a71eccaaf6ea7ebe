package command

import (
	"context"
	"fmt"

	cartdomain "github.com/tranvu/storefront/internal/cart/domain"
	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/pricing"
	"github.com/tranvu/storefront/internal/purchase/domain"
	"github.com/tranvu/storefront/kafka"
	"github.com/tranvu/storefront/pkg/logger"
)

// SubmitPurchaseCommand submits one purchase. When Product is nil the
// snapshot and default quantity come from the user's cart line (the
// cart buy-now flow); a provided snapshot covers buying straight from the
// product detail page without a cart line.
type SubmitPurchaseCommand struct {
	UserID    string
	ProductID string
	Quantity  int
	Product   *catalog.Product
}

// SubmitPurchaseResult reports the outcome: the created record, the total
// quoted in the confirmation prompt, and the state of the user's cart
// after the matching line was cleared.
type SubmitPurchaseResult struct {
	Purchase          domain.Purchase `json:"purchase"`
	ConfirmationTotal float64         `json:"confirmationTotal"`
	RemovedFromCart   bool            `json:"removedFromCart"`
	CartCount         int             `json:"cartCount"`
}

// SubmitPurchaseHandler handles the purchase submission command
type SubmitPurchaseHandler struct {
	purchases domain.PurchaseService
	cart      cartdomain.CartRepository
	publisher *kafka.Publisher
}

// NewSubmitPurchaseHandler creates a new submit purchase handler
func NewSubmitPurchaseHandler(purchases domain.PurchaseService, cart cartdomain.CartRepository, publisher *kafka.Publisher) *SubmitPurchaseHandler {
	return &SubmitPurchaseHandler{purchases: purchases, cart: cart, publisher: publisher}
}

// Handle submits the purchase to the backend, clears the matching cart
// line on success and publishes a purchase event. Submission failures
// surface unchanged; nothing is retried and the cart is left untouched.
func (h *SubmitPurchaseHandler) Handle(ctx context.Context, cmd SubmitPurchaseCommand) (*SubmitPurchaseResult, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	snapshot := cmd.Product
	quantity := cmd.Quantity

	if snapshot == nil {
		lines, err := h.cart.LinesFor(ctx, cmd.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to read cart: %w", err)
		}
		for i := range lines {
			if lines[i].Product.ID == cmd.ProductID {
				snapshot = &lines[i].Product
				if quantity == 0 {
					quantity = lines[i].Quantity
				}
				break
			}
		}
		if snapshot == nil {
			return nil, fmt.Errorf("product %s is not in the cart", cmd.ProductID)
		}
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, cartdomain.ErrInvalidQuantity
	}

	total, err := pricing.ConfirmationTotal(snapshot.BasePrice, snapshot.DiscountPercentage, quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase pricing: %w", err)
	}

	purchase, err := h.purchases.Create(ctx, cmd.ProductID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to submit purchase: %w", err)
	}

	// The purchased line leaves the cart; a missing line (detail-page
	// buy-now) is fine.
	removed, err := h.cart.Remove(ctx, cmd.UserID, cmd.ProductID)
	if err != nil {
		logger.Warn(ctx).Err(err).
			Str("product_id", cmd.ProductID).
			Msg("Purchase submitted but cart line removal did not persist")
	}
	count, countErr := h.cart.CountFor(ctx, cmd.UserID)
	if countErr != nil {
		logger.Warn(ctx).Err(countErr).Msg("Failed to refresh cart count after purchase")
	}

	if err := h.publisher.PublishPurchaseSubmitted(ctx, kafka.PurchaseSubmittedEvent{
		PurchaseID: purchase.ID,
		UserID:     cmd.UserID,
		ProductID:  cmd.ProductID,
		Quantity:   quantity,
		Total:      total,
	}); err != nil {
		// Events are best effort; the purchase already went through
		logger.Warn(ctx).Err(err).Msg("Failed to publish purchase event")
	}

	return &SubmitPurchaseResult{
		Purchase:          *purchase,
		ConfirmationTotal: total,
		RemovedFromCart:   removed,
		CartCount:         count,
	}, nil
}
