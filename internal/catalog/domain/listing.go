package domain

import "context"

// ListingSource is the remote collaborator that owns product data. The
// catalog only consumes already-resolved pages from it; it never blocks
// catalog state on an in-flight fetch.
type ListingSource interface {
	FetchProducts(ctx context.Context, searchText string, page, pageSize int) ([]Product, error)
	FetchProductByURLName(ctx context.Context, urlName string) (*Product, error)
	FetchCategories(ctx context.Context) ([]Category, error)
}
