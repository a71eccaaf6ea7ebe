//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"

	"github.com/tranvu/storefront/internal/catalog/delivery/http"
	"github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/catalog/usecase/query"
	viewedcommand "github.com/tranvu/storefront/internal/viewed/usecase/command"
	"github.com/tranvu/storefront/kafka"
)

// Query Handlers Providers
func ProvideListCatalogHandler(listing domain.ListingSource) *query.ListCatalogHandler {
	return query.NewListCatalogHandler(listing)
}

func ProvideGetProductHandler(listing domain.ListingSource) *query.GetProductHandler {
	return query.NewGetProductHandler(listing)
}

func ProvideListCategoriesHandler(listing domain.ListingSource) *query.ListCategoriesHandler {
	return query.NewListCategoriesHandler(listing)
}

// Wire sets
var QueryHandlerSet = wire.NewSet(
	ProvideListCatalogHandler,
	ProvideGetProductHandler,
	ProvideListCategoriesHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(listing domain.ListingSource, recordView *viewedcommand.RecordViewHandler, publisher *kafka.Publisher) (*http.CatalogHandler, error) {
	wire.Build(
		QueryHandlerSet,
		http.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
