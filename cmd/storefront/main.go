package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	cartHTTP "github.com/tranvu/storefront/internal/cart/delivery/http"
	cartRepository "github.com/tranvu/storefront/internal/cart/repository"
	catalogClient "github.com/tranvu/storefront/internal/catalog/client"
	catalogHTTP "github.com/tranvu/storefront/internal/catalog/delivery/http"
	"github.com/tranvu/storefront/internal/config"
	purchaseClient "github.com/tranvu/storefront/internal/purchase/client"
	purchaseHTTP "github.com/tranvu/storefront/internal/purchase/delivery/http"
	viewedHTTP "github.com/tranvu/storefront/internal/viewed/delivery/http"
	viewedRepository "github.com/tranvu/storefront/internal/viewed/repository"
	viewedCommand "github.com/tranvu/storefront/internal/viewed/usecase/command"
	"github.com/tranvu/storefront/kafka"
	"github.com/tranvu/storefront/pkg/auth"
	"github.com/tranvu/storefront/pkg/database"
	"github.com/tranvu/storefront/pkg/kvstore"
	"github.com/tranvu/storefront/pkg/logger"
	"github.com/tranvu/storefront/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Durable store for the cart and the viewed log
	store := newKVStore(cfg)

	logger.Logger.Info().Str("backend", cfg.KVBackend).Msg("Key-value store initialized")

	// Backend API clients
	listing := catalogClient.NewListingClient(cfg.BackendAPIURL)
	purchases := purchaseClient.NewPurchaseClient(cfg.BackendAPIURL)

	// Kafka publisher is optional; without brokers events are skipped
	var publisher *kafka.Publisher
	if cfg.KafkaBrokers != "" {
		publisher, err = kafka.NewPublisher([]string{cfg.KafkaBrokers})
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Repositories
	cartRepo := cartRepository.NewTracingCartRepository(cartRepository.NewKVCartRepository(store))
	viewedRepo := viewedRepository.NewKVViewedRepository(store)
	recordView := viewedCommand.NewRecordViewHandler(viewedRepo)

	// HTTP handlers
	cartHandler := cartHTTP.NewCartHandler(cartRepo)
	catalogHandler := catalogHTTP.NewCatalogHandler(listing, recordView, publisher)
	viewedHandler := viewedHTTP.NewViewedHandler(viewedRepo, publisher)
	purchaseHandler := purchaseHTTP.NewPurchaseHandler(purchases, cartRepo, publisher)

	// Setup router
	router := mux.NewRouter()
	router.Use(auth.Identity)

	cartHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	viewedHandler.RegisterRoutes(router)
	purchaseHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", healthCheck(cfg.KVBackend, store)).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	catalogHTTP.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", cfg.HTTPPort).
		Str("metrics_endpoint", "/metrics").
		Str("backend_api", cfg.BackendAPIURL).
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+cfg.HTTPPort, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// newKVStore selects the durable backend. The in-memory store keeps the
// service usable when neither Redis nor Postgres is configured.
func newKVStore(cfg *config.Config) kvstore.Store {
	switch cfg.KVBackend {
	case "redis":
		store, err := kvstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		return store
	case "postgres":
		db, err := database.NewGormConnection(database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		store, err := kvstore.NewPostgresStore(db)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		return store
	case "memory":
		return kvstore.NewMemoryStore()
	default:
		logger.Logger.Fatal().Str("backend", cfg.KVBackend).Msg("Unknown KV_BACKEND, expected redis, postgres or memory")
		return nil
	}
}

func healthCheck(backend string, store kvstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok", "kv_backend": backend}
		code := http.StatusOK

		if _, _, err := store.Get(r.Context(), "health"); err != nil {
			status["status"] = "degraded"
			status["error"] = err.Error()
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
