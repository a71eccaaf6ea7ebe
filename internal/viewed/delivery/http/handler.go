package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalog "github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/viewed/domain"
	"github.com/tranvu/storefront/internal/viewed/usecase/command"
	"github.com/tranvu/storefront/internal/viewed/usecase/query"
	"github.com/tranvu/storefront/kafka"
	"github.com/tranvu/storefront/pkg/logger"
)

// ViewedHandler serves the recently-viewed log
type ViewedHandler struct {
	recordHandler *command.RecordViewHandler
	listHandler   *query.ListViewedHandler
	publisher     *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewViewedHandler creates a new viewed handler (manual DI)
func NewViewedHandler(repo domain.ViewedRepository, publisher *kafka.Publisher) *ViewedHandler {
	return NewViewedHandlerWithDI(command.NewRecordViewHandler(repo), query.NewListViewedHandler(repo), publisher)
}

// NewViewedHandlerWithDI creates a new viewed handler using dependency injection
func NewViewedHandlerWithDI(recordHandler *command.RecordViewHandler, listHandler *query.ListViewedHandler, publisher *kafka.Publisher) *ViewedHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_viewed_requests_total",
			Help: "Total number of viewed log requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_viewed_request_duration_seconds",
			Help:    "Duration of viewed log requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ViewedHandler{
		recordHandler:  recordHandler,
		listHandler:    listHandler,
		publisher:      publisher,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// Response is the JSON envelope shared by all viewed endpoints
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

func (h *ViewedHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the viewed log routes
func (h *ViewedHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/viewed", h.metricsMiddleware("/api/viewed", h.ListViewed)).Methods("GET")
	router.HandleFunc("/api/viewed", h.metricsMiddleware("/api/viewed", h.RecordView)).Methods("POST")
}

// ListViewed handles GET /api/viewed
// @Summary List recently viewed products
// @Description Viewed products in first-seen order; omit page and pageSize for the whole log
// @Tags Viewed
// @Produce json
// @Param page query int false "1-indexed page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} Response
// @Router /api/viewed [get]
func (h *ViewedHandler) ListViewed(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.listHandler.Handle(r.Context(), query.ListViewedQuery{Page: page, PageSize: pageSize})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list viewed products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list viewed products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// RecordView handles POST /api/viewed
// @Summary Record a product view
// @Description Appends the product to the viewed log; a product already in the log stays at its first-seen position
// @Tags Viewed
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/viewed [post]
func (h *ViewedHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product catalog.Product `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	recorded, err := h.recordHandler.Handle(r.Context(), command.RecordViewCommand{Product: req.Product})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	if recorded {
		if err := h.publisher.PublishProductViewed(r.Context(), kafka.ProductViewedEvent{
			ProductID:   req.Product.ID,
			ProductName: req.Product.Name,
		}); err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Failed to publish product viewed event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]bool{"recorded": recorded},
	})
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
