package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tranvu/storefront/internal/cart/domain"
	"github.com/tranvu/storefront/internal/cart/usecase/command"
	"github.com/tranvu/storefront/internal/cart/usecase/query"
	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/pkg/auth"
	"github.com/tranvu/storefront/pkg/kvstore"
	"github.com/tranvu/storefront/pkg/logger"
)

// CartHandler handles HTTP requests for the cart using CQRS pattern
type CartHandler struct {
	addHandler         *command.AddItemHandler
	setQuantityHandler *command.SetQuantityHandler
	removeHandler      *command.RemoveItemHandler

	listHandler  *query.ListLinesHandler
	countHandler *query.CountLinesHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCartHandler creates a new cart handler (manual DI)
func NewCartHandler(repo domain.CartRepository) *CartHandler {
	return newCartHandler(
		command.NewAddItemHandler(repo),
		command.NewSetQuantityHandler(repo),
		command.NewRemoveItemHandler(repo),
		query.NewListLinesHandler(repo),
		query.NewCountLinesHandler(repo),
	)
}

// NewCartHandlerWithDI creates a new cart handler using dependency injection
func NewCartHandlerWithDI(
	addHandler *command.AddItemHandler,
	setQuantityHandler *command.SetQuantityHandler,
	removeHandler *command.RemoveItemHandler,
	listHandler *query.ListLinesHandler,
	countHandler *query.CountLinesHandler,
) *CartHandler {
	return newCartHandler(addHandler, setQuantityHandler, removeHandler, listHandler, countHandler)
}

func newCartHandler(
	addHandler *command.AddItemHandler,
	setQuantityHandler *command.SetQuantityHandler,
	removeHandler *command.RemoveItemHandler,
	listHandler *query.ListLinesHandler,
	countHandler *query.CountLinesHandler,
) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_requests_total",
			Help: "Total number of cart requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CartHandler{
		addHandler:         addHandler,
		setQuantityHandler: setQuantityHandler,
		removeHandler:      removeHandler,
		listHandler:        listHandler,
		countHandler:       countHandler,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
	}
}

// Response is the JSON envelope shared by all cart endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", h.ListLines)).Methods("GET")
	router.HandleFunc("/api/cart/count", h.metricsMiddleware("/api/cart/count", h.CountLines)).Methods("GET")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/cart/items/{productId}", h.metricsMiddleware("/api/cart/items/{productId}", h.SetQuantity)).Methods("PUT")
	router.HandleFunc("/api/cart/items/{productId}", h.metricsMiddleware("/api/cart/items/{productId}", h.RemoveItem)).Methods("DELETE")
}

// ListLines handles GET /api/cart
// @Summary List cart lines
// @Description Lines of the signed-in user's cart with derived prices; anonymous callers see an empty cart
// @Tags Cart
// @Produce json
// @Success 200 {object} Response
// @Router /api/cart [get]
func (h *CartHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	views, err := h.listHandler.Handle(r.Context(), query.ListLinesQuery{UserID: auth.UserID(r.Context())})
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to list cart")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: views})
}

// CountLines handles GET /api/cart/count
func (h *CartHandler) CountLines(w http.ResponseWriter, r *http.Request) {
	count, err := h.countHandler.Handle(r.Context(), query.CountLinesQuery{UserID: auth.UserID(r.Context())})
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to count cart lines")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]int{"count": count}})
}

// AddItem handles POST /api/cart/items
// @Summary Add a product to the cart
// @Description Adds the product snapshot, merging with an existing line for the same product
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Sign in to add items to the cart"})
		return
	}

	var req struct {
		Product  catalog.Product `json:"product"`
		Quantity int             `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	// The omitted-quantity default must land before the stock check so a
	// bare add against an out-of-stock snapshot is still rejected
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	// Stock ceiling is a presentation concern; the store itself does not
	// enforce it
	if req.Quantity > req.Product.Stock {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Quantity exceeds available stock"})
		return
	}

	count, err := h.addHandler.Handle(r.Context(), command.AddItemCommand{
		UserID:   userID,
		Product:  req.Product,
		Quantity: req.Quantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		h.respondStoreError(w, r, err, "Failed to add item to cart")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Added to cart",
		Data:    map[string]int{"count": count},
	})
}

// SetQuantity handles PUT /api/cart/items/{productId}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Sign in to update the cart"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	found, err := h.setQuantityHandler.Handle(r.Context(), command.SetQuantityCommand{
		UserID:    userID,
		ProductID: mux.Vars(r)["productId"],
		Quantity:  req.Quantity,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		h.respondStoreError(w, r, err, "Failed to update quantity")
		return
	}
	if !found {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product is not in the cart"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Quantity updated"})
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Sign in to update the cart"})
		return
	}

	removed, err := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{
		UserID:    userID,
		ProductID: mux.Vars(r)["productId"],
	})
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to remove item")
		return
	}
	if !removed {
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product was not in the cart"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Removed from cart"})
}

// respondStoreError distinguishes a degraded durable store from other
// failures: the mutation applied in memory, so the caller is warned
// rather than failed outright.
func (h *CartHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger.Error(r.Context()).Err(err).Msg(message)

	if errors.Is(err, kvstore.ErrUnavailable) {
		respondJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Cart storage is unavailable; changes may not survive a restart",
		})
		return
	}
	respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: message})
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
