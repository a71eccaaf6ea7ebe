package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cartdomain "github.com/tranvu/storefront/internal/cart/domain"
	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/purchase/domain"
	"github.com/tranvu/storefront/internal/purchase/usecase/command"
	"github.com/tranvu/storefront/internal/purchase/usecase/query"
	"github.com/tranvu/storefront/kafka"
	"github.com/tranvu/storefront/pkg/auth"
	"github.com/tranvu/storefront/pkg/logger"
)

// PurchaseHandler handles HTTP requests for purchases using CQRS pattern
type PurchaseHandler struct {
	submitHandler *command.SubmitPurchaseHandler
	reviewHandler *command.UpdateReviewHandler
	listHandler   *query.ListPurchasesHandler
	getHandler    *query.GetPurchaseHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewPurchaseHandler creates a new purchase handler (manual DI)
func NewPurchaseHandler(purchases domain.PurchaseService, cart cartdomain.CartRepository, publisher *kafka.Publisher) *PurchaseHandler {
	return NewPurchaseHandlerWithDI(
		command.NewSubmitPurchaseHandler(purchases, cart, publisher),
		command.NewUpdateReviewHandler(purchases),
		query.NewListPurchasesHandler(purchases),
		query.NewGetPurchaseHandler(purchases),
	)
}

// NewPurchaseHandlerWithDI creates a new purchase handler using dependency injection
func NewPurchaseHandlerWithDI(
	submitHandler *command.SubmitPurchaseHandler,
	reviewHandler *command.UpdateReviewHandler,
	listHandler *query.ListPurchasesHandler,
	getHandler *query.GetPurchaseHandler,
) *PurchaseHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_purchase_requests_total",
			Help: "Total number of purchase requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_purchase_request_duration_seconds",
			Help:    "Duration of purchase requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &PurchaseHandler{
		submitHandler:  submitHandler,
		reviewHandler:  reviewHandler,
		listHandler:    listHandler,
		getHandler:     getHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// Response is the JSON envelope shared by all purchase endpoints
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

func (h *PurchaseHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the purchase routes
func (h *PurchaseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/purchases", h.metricsMiddleware("/api/purchases", h.SubmitPurchase)).Methods("POST")
	router.HandleFunc("/api/purchases", h.metricsMiddleware("/api/purchases", h.ListPurchases)).Methods("GET")
	router.HandleFunc("/api/purchases/{id}", h.metricsMiddleware("/api/purchases/{id}", h.GetPurchase)).Methods("GET")
	router.HandleFunc("/api/purchases/{id}/review", h.metricsMiddleware("/api/purchases/{id}/review", h.UpdateReview)).Methods("PATCH")
}

// SubmitPurchase handles POST /api/purchases
// @Summary Submit a purchase
// @Description Submits a purchase to the order backend and clears the matching cart line
// @Tags Purchases
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/purchases [post]
func (h *PurchaseHandler) SubmitPurchase(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Sign in to purchase"})
		return
	}

	var req struct {
		ProductID string           `json:"productId"`
		Quantity  int              `json:"quantity"`
		Product   *catalog.Product `json:"product,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.submitHandler.Handle(r.Context(), command.SubmitPurchaseCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Product:   req.Product,
	})
	if err != nil {
		if errors.Is(err, cartdomain.ErrInvalidQuantity) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to submit purchase")
		respondJSON(w, http.StatusBadGateway, Response{Success: false, Error: "Failed to submit purchase"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Purchase submitted", Data: result})
}

// UpdateReview handles PATCH /api/purchases/{id}/review
// @Summary Rate a purchase
// @Description Attaches a 1..5 star rating and an optional comment to a past purchase
// @Tags Purchases
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Purchase id"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/purchases/{id}/review [patch]
func (h *PurchaseHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	if auth.UserID(r.Context()) == "" {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Sign in to review a purchase"})
		return
	}

	var req struct {
		ReviewNote    int    `json:"reviewNote"`
		ReviewComment string `json:"reviewComment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	purchase, err := h.reviewHandler.Handle(r.Context(), command.UpdateReviewCommand{
		ID:      mux.Vars(r)["id"],
		Note:    req.ReviewNote,
		Comment: req.ReviewComment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReviewNote) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to update review")
		respondJSON(w, http.StatusBadGateway, Response{Success: false, Error: "Failed to update review"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Review saved", Data: purchase})
}

// ListPurchases handles GET /api/purchases
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	purchases, err := h.listHandler.Handle(r.Context(), query.ListPurchasesQuery{
		UserID:   auth.UserID(r.Context()),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list purchases")
		respondJSON(w, http.StatusBadGateway, Response{Success: false, Error: "Failed to list purchases"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: purchases})
}

// GetPurchase handles GET /api/purchases/{id}
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.getHandler.Handle(r.Context(), query.GetPurchaseQuery{ID: mux.Vars(r)["id"]})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get purchase")
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Purchase not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: purchase})
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
