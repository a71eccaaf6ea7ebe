package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvu/storefront/internal/cart/repository"
	"github.com/tranvu/storefront/pkg/auth"
	"github.com/tranvu/storefront/pkg/kvstore"
)

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("storefront-dev-secret"))
	require.NoError(t, err)
	return signed
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := NewCartHandler(repository.NewKVCartRepository(kvstore.NewMemoryStore()))

	router := mux.NewRouter()
	router.Use(auth.Identity)
	handler.RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method, url, token string, body interface{}) (*http.Response, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestCartHandler(t *testing.T) {
	server := newServer(t)
	token := signToken(t, "u1")

	addBody := func(quantity int) map[string]interface{} {
		return map[string]interface{}{
			"product": map[string]interface{}{
				"id":        "p1",
				"name":      "Sneakers",
				"basePrice": 100.0,
				"stock":     5,
			},
			"quantity": quantity,
		}
	}

	t.Run("anonymous reads see an empty cart", func(t *testing.T) {
		resp, envelope := doRequest(t, http.MethodGet, server.URL+"/api/cart", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, envelope.Success)
	})

	t.Run("anonymous mutations are rejected", func(t *testing.T) {
		resp, envelope := doRequest(t, http.MethodPost, server.URL+"/api/cart/items", "", addBody(1))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, envelope.Success)
	})

	t.Run("adding twice merges into one line", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPost, server.URL+"/api/cart/items", token, addBody(2))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, envelope := doRequest(t, http.MethodPost, server.URL+"/api/cart/items", token, addBody(3))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(1), data["count"])
	})

	t.Run("quantity above stock is rejected", func(t *testing.T) {
		resp, envelope := doRequest(t, http.MethodPost, server.URL+"/api/cart/items", token, addBody(6))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, envelope.Error, "stock")
	})

	t.Run("omitted quantity still counts against stock", func(t *testing.T) {
		body := map[string]interface{}{
			"product": map[string]interface{}{
				"id":        "p0",
				"name":      "Sold out",
				"basePrice": 10.0,
				"stock":     0,
			},
		}
		resp, envelope := doRequest(t, http.MethodPost, server.URL+"/api/cart/items", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, envelope.Error, "stock")
	})

	t.Run("updating a missing line is a 404", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPut, server.URL+"/api/cart/items/nope", token,
			map[string]int{"quantity": 2})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("zero quantity is a 400", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPut, server.URL+"/api/cart/items/p1", token,
			map[string]int{"quantity": 0})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("removing the line empties the cart", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodDelete, server.URL+"/api/cart/items/p1", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		_, envelope := doRequest(t, http.MethodGet, server.URL+"/api/cart/count", token, nil)
		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(0), data["count"])
	})

	t.Run("carts are scoped per user", func(t *testing.T) {
		_, _ = doRequest(t, http.MethodPost, server.URL+"/api/cart/items", token, addBody(1))

		_, envelope := doRequest(t, http.MethodGet, server.URL+"/api/cart/count", signToken(t, "u2"), nil)
		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(0), data["count"],
			fmt.Sprintf("u2 must not see u1's cart: %+v", envelope))
	})
}
