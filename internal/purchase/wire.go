//go:build wireinject
// +build wireinject

package purchase

import (
	"github.com/google/wire"

	cartdomain "github.com/tranvu/storefront/internal/cart/domain"
	"github.com/tranvu/storefront/internal/purchase/delivery/http"
	"github.com/tranvu/storefront/internal/purchase/domain"
	"github.com/tranvu/storefront/internal/purchase/usecase/command"
	"github.com/tranvu/storefront/internal/purchase/usecase/query"
	"github.com/tranvu/storefront/kafka"
)

// Command Handlers Providers
func ProvideSubmitPurchaseHandler(purchases domain.PurchaseService, cart cartdomain.CartRepository, publisher *kafka.Publisher) *command.SubmitPurchaseHandler {
	return command.NewSubmitPurchaseHandler(purchases, cart, publisher)
}

func ProvideUpdateReviewHandler(purchases domain.PurchaseService) *command.UpdateReviewHandler {
	return command.NewUpdateReviewHandler(purchases)
}

// Query Handlers Providers
func ProvideListPurchasesHandler(purchases domain.PurchaseService) *query.ListPurchasesHandler {
	return query.NewListPurchasesHandler(purchases)
}

func ProvideGetPurchaseHandler(purchases domain.PurchaseService) *query.GetPurchaseHandler {
	return query.NewGetPurchaseHandler(purchases)
}

// Wire sets
var HandlerSet = wire.NewSet(
	ProvideSubmitPurchaseHandler,
	ProvideUpdateReviewHandler,
	ProvideListPurchasesHandler,
	ProvideGetPurchaseHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(purchases domain.PurchaseService, cart cartdomain.CartRepository, publisher *kafka.Publisher) (*http.PurchaseHandler, error) {
	wire.Build(
		HandlerSet,
		http.NewPurchaseHandlerWithDI,
	)
	return nil, nil
}
