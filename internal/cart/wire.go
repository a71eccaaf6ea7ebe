//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"

	"github.com/tranvu/storefront/internal/cart/delivery/http"
	"github.com/tranvu/storefront/internal/cart/domain"
	"github.com/tranvu/storefront/internal/cart/repository"
	"github.com/tranvu/storefront/internal/cart/usecase/command"
	"github.com/tranvu/storefront/internal/cart/usecase/query"
	"github.com/tranvu/storefront/pkg/kvstore"
)

// ProvideCartRepository provides the cart repository wrapped with tracing
func ProvideCartRepository(store kvstore.Store) domain.CartRepository {
	return repository.NewTracingCartRepository(repository.NewKVCartRepository(store))
}

// Command Handlers Providers
func ProvideAddItemHandler(repo domain.CartRepository) *command.AddItemHandler {
	return command.NewAddItemHandler(repo)
}

func ProvideSetQuantityHandler(repo domain.CartRepository) *command.SetQuantityHandler {
	return command.NewSetQuantityHandler(repo)
}

func ProvideRemoveItemHandler(repo domain.CartRepository) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(repo)
}

// Query Handlers Providers
func ProvideListLinesHandler(repo domain.CartRepository) *query.ListLinesHandler {
	return query.NewListLinesHandler(repo)
}

func ProvideCountLinesHandler(repo domain.CartRepository) *query.CountLinesHandler {
	return query.NewCountLinesHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCartRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideSetQuantityHandler,
	ProvideRemoveItemHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListLinesHandler,
	ProvideCountLinesHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(store kvstore.Store) (*http.CartHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCartHandlerWithDI,
	)
	return nil, nil
}
