//go:build wireinject
// +build wireinject

package viewed

import (
	"github.com/google/wire"

	"github.com/tranvu/storefront/internal/viewed/delivery/http"
	"github.com/tranvu/storefront/internal/viewed/domain"
	"github.com/tranvu/storefront/internal/viewed/repository"
	"github.com/tranvu/storefront/internal/viewed/usecase/command"
	"github.com/tranvu/storefront/internal/viewed/usecase/query"
	"github.com/tranvu/storefront/kafka"
	"github.com/tranvu/storefront/pkg/kvstore"
)

// ProvideViewedRepository provides the viewed log repository
func ProvideViewedRepository(store kvstore.Store) domain.ViewedRepository {
	return repository.NewKVViewedRepository(store)
}

// Command Handlers Providers
func ProvideRecordViewHandler(repo domain.ViewedRepository) *command.RecordViewHandler {
	return command.NewRecordViewHandler(repo)
}

// Query Handlers Providers
func ProvideListViewedHandler(repo domain.ViewedRepository) *query.ListViewedHandler {
	return query.NewListViewedHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideViewedRepository,
)

var HandlerSet = wire.NewSet(
	RepositorySet,
	ProvideRecordViewHandler,
	ProvideListViewedHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(store kvstore.Store, publisher *kafka.Publisher) (*http.ViewedHandler, error) {
	wire.Build(
		HandlerSet,
		http.NewViewedHandlerWithDI,
	)
	return nil, nil
}
