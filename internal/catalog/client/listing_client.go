package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/pkg/logger"
)

// ListingClient talks to the backend product/category listing API. The
// storefront never owns product data; every catalog read starts here and
// errors surface to the caller without retries.
type ListingClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewListingClient creates a listing client with traced transport
func NewListingClient(baseURL string) *ListingClient {
	return &ListingClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchProducts fetches one page of products matching the (already
// debounced) search text.
func (c *ListingClient) FetchProducts(ctx context.Context, searchText string, page, pageSize int) ([]domain.Product, error) {
	query := url.Values{}
	query.Set("productName", searchText)
	query.Set("page", strconv.Itoa(page))
	query.Set("offset", strconv.Itoa(pageSize))

	var products []domain.Product
	if err := c.getJSON(ctx, "/product?"+query.Encode(), &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// FetchProductByURLName fetches a single product for the detail view
func (c *ListingClient) FetchProductByURLName(ctx context.Context, urlName string) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, "/product/"+url.PathEscape(urlName), &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %q: %w", urlName, err)
	}
	return &product, nil
}

// categoryPageLimit caps the single-page category fetch. Categories past
// this count are not offered by the filter.
const categoryPageLimit = 100

// FetchCategories fetches the category list used by the category filter.
// The listing API pages this endpoint; one page of categoryPageLimit is
// requested, so the filter sees at most that many categories.
func (c *ListingClient) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("offset", strconv.Itoa(categoryPageLimit))

	var categories []domain.Category
	if err := c.getJSON(ctx, "/category?"+query.Encode(), &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (c *ListingClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn(ctx).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Listing API returned non-OK status")
		return fmt.Errorf("listing API returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
