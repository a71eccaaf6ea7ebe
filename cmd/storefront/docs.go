package main

// @title Storefront API
// @version 1.0
// @description Shopper-facing storefront service: catalog browsing, cart, recently viewed products and purchases with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/tranvu/storefront
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/tranvu/storefront/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Catalog
// @tag.description Catalog browsing and filtering endpoints

// @tag.name Cart
// @tag.description Shopping cart endpoints

// @tag.name Viewed
// @tag.description Recently viewed products endpoints

// @tag.name Purchases
// @tag.description Purchase endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
