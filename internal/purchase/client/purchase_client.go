package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tranvu/storefront/internal/purchase/domain"
	"github.com/tranvu/storefront/pkg/auth"
)

// PurchaseClient talks to the backend purchase API. The caller's bearer
// token is passed through from the request context.
type PurchaseClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPurchaseClient creates a purchase client with traced transport
func NewPurchaseClient(baseURL string) *PurchaseClient {
	return &PurchaseClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *PurchaseClient) Create(ctx context.Context, productID string, quantity int) (*domain.Purchase, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"productId": productID,
		"amount":    quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode purchase: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/purchase", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var purchase domain.Purchase
	if err := c.do(req, &purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return &purchase, nil
}

func (c *PurchaseClient) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]domain.Purchase, error) {
	query := url.Values{}
	query.Set("userId", userID)
	query.Set("page", strconv.Itoa(page))
	query.Set("offset", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/purchase?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var purchases []domain.Purchase
	if err := c.do(req, &purchases); err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

func (c *PurchaseClient) UpdateReview(ctx context.Context, id string, note int, comment string) (*domain.Purchase, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"reviewNote":    note,
		"reviewComment": comment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode review: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/purchase/review/"+url.PathEscape(id), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var purchase domain.Purchase
	if err := c.do(req, &purchase); err != nil {
		return nil, fmt.Errorf("failed to update review for purchase %s: %w", id, err)
	}
	return &purchase, nil
}

func (c *PurchaseClient) Get(ctx context.Context, id string) (*domain.Purchase, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/purchase/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var purchase domain.Purchase
	if err := c.do(req, &purchase); err != nil {
		return nil, fmt.Errorf("failed to get purchase %s: %w", id, err)
	}
	return &purchase, nil
}

func (c *PurchaseClient) do(req *http.Request, out interface{}) error {
	if token := auth.Token(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("purchase API returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
