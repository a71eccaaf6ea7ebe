package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tranvu/storefront/internal/catalog/domain"
	"github.com/tranvu/storefront/internal/catalog/usecase/query"
	viewedcommand "github.com/tranvu/storefront/internal/viewed/usecase/command"
	"github.com/tranvu/storefront/kafka"
	"github.com/tranvu/storefront/pkg/logger"
)

// CatalogHandler handles HTTP requests for browsing the catalog
type CatalogHandler struct {
	listHandler       *query.ListCatalogHandler
	getHandler        *query.GetProductHandler
	categoriesHandler *query.ListCategoriesHandler
	recordView        *viewedcommand.RecordViewHandler
	publisher         *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
}

// NewCatalogHandler creates a new catalog handler (manual DI)
func NewCatalogHandler(listing domain.ListingSource, recordView *viewedcommand.RecordViewHandler, publisher *kafka.Publisher) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		query.NewListCatalogHandler(listing),
		query.NewGetProductHandler(listing),
		query.NewListCategoriesHandler(listing),
		recordView,
		publisher,
	)
}

// NewCatalogHandlerWithDI creates a new catalog handler using dependency injection
func NewCatalogHandlerWithDI(
	listHandler *query.ListCatalogHandler,
	getHandler *query.GetProductHandler,
	categoriesHandler *query.ListCategoriesHandler,
	recordView *viewedcommand.RecordViewHandler,
	publisher *kafka.Publisher,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Total number of catalog requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "storefront_catalog_request_summary_seconds",
			Help:       "Summary of catalog request durations",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)

	return &CatalogHandler{
		listHandler:       listHandler,
		getHandler:        getHandler,
		categoriesHandler: categoriesHandler,
		recordView:        recordView,
		publisher:         publisher,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		requestSummary:    requestSummary,
	}
}

// Response is the JSON envelope shared by all catalog endpoints
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

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/catalog", h.metricsMiddleware("/api/catalog", h.ListCatalog)).Methods("GET")
	router.HandleFunc("/api/catalog/categories", h.metricsMiddleware("/api/catalog/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/catalog/products/{urlName}", h.metricsMiddleware("/api/catalog/products/{urlName}", h.GetProduct)).Methods("GET")
}

// filterStateFromQuery builds the view state from query parameters,
// starting from the defaults so omitted parameters impose nothing.
func filterStateFromQuery(r *http.Request) (domain.FilterState, error) {
	state := domain.NewFilterState()
	q := r.URL.Query()

	state.SearchText = q.Get("search")
	state.Category = q.Get("category")

	if min, max := q.Get("minPrice"), q.Get("maxPrice"); min != "" || max != "" {
		pr := &domain.PriceRange{}
		var err error
		if min != "" {
			if pr.Min, err = strconv.ParseFloat(min, 64); err != nil {
				return state, errors.New("minPrice must be a number")
			}
		}
		if max != "" {
			if pr.Max, err = strconv.ParseFloat(max, 64); err != nil {
				return state, errors.New("maxPrice must be a number")
			}
		} else {
			pr.Max = 1e12
		}
		state.PriceRange = pr
	}

	// Page size first: changing it resets the page, so an explicit page
	// parameter must win afterwards
	if raw := q.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return state, domain.ErrInvalidPageSize
		}
		if err := state.SetPageSize(size); err != nil {
			return state, err
		}
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return state, domain.ErrInvalidPage
		}
		if err := state.SetPage(page); err != nil {
			return state, err
		}
	}
	if raw := q.Get("view"); raw != "" {
		switch domain.ViewMode(raw) {
		case domain.ViewModeGrid, domain.ViewModeList:
			state.ViewMode = domain.ViewMode(raw)
		default:
			return state, errors.New("view must be grid or list")
		}
	}
	if raw := q.Get("columns"); raw != "" {
		columns, err := strconv.Atoi(raw)
		if err != nil {
			return state, domain.ErrInvalidGridColumns
		}
		if err := state.SetGridColumns(columns); err != nil {
			return state, err
		}
	}

	return state, nil
}

// ListCatalog handles GET /api/catalog
// @Summary List a catalog page
// @Description One page of the catalog, narrowed by search, category and price range
// @Tags Catalog
// @Produce json
// @Param search query string false "Search text"
// @Param category query string false "Category name"
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Param page query int false "1-indexed page"
// @Param pageSize query int false "Page size (6, 8 or 12)"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/catalog [get]
func (h *CatalogHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	state, err := filterStateFromQuery(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	view, err := h.listHandler.Handle(r.Context(), query.ListCatalogQuery{State: state})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list catalog")
		respondJSON(w, http.StatusBadGateway, Response{Success: false, Error: "Failed to list catalog"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// ListCategories handles GET /api/catalog/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoriesHandler.Handle(r.Context(), query.ListCategoriesQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		respondJSON(w, http.StatusBadGateway, Response{Success: false, Error: "Failed to list categories"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: categories})
}

// GetProduct handles GET /api/catalog/products/{urlName}
// @Summary Get product details
// @Description Product detail by url name; a successful fetch is recorded in the viewed log
// @Tags Catalog
// @Produce json
// @Param urlName path string true "Product url name"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/catalog/products/{urlName} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{URLName: mux.Vars(r)["urlName"]})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get product")
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
		return
	}

	// Viewing a detail page feeds the recently-viewed log; failures there
	// never block the response
	if h.recordView != nil {
		recorded, err := h.recordView.Handle(r.Context(), viewedcommand.RecordViewCommand{Product: detail.Product})
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Failed to record product view")
		} else if recorded {
			if err := h.publisher.PublishProductViewed(r.Context(), kafka.ProductViewedEvent{
				ProductID:   detail.Product.ID,
				ProductName: detail.Product.Name,
			}); err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Failed to publish product viewed event")
			}
		}
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: detail})
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
