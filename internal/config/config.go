package config

import "os"

// Config holds the storefront service configuration, loaded from
// environment variables with development-friendly defaults.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string

	// KVBackend selects the durable store: redis, postgres or memory
	KVBackend     string
	RedisAddr     string
	RedisPassword string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// BackendAPIURL is the base URL of the remote product/purchase API
	BackendAPIURL string

	// KafkaBrokers is empty when event publishing is disabled
	KafkaBrokers string
}

// Load loads the storefront configuration
func Load() *Config {
	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),

		KVBackend:     getEnv("KV_BACKEND", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "storefrontdb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		BackendAPIURL: getEnv("BACKEND_API_URL", "http://localhost:3000"),
		KafkaBrokers:  getEnv("KAFKA_BROKERS", ""),
	}
}

// IsDevelopment reports whether the service runs with development settings
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
