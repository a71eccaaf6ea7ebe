package kafka

import "time"

// PurchaseSubmittedEvent is emitted after the backend accepted a purchase
// and the cart line was cleared
type PurchaseSubmittedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	PurchaseID string    `json:"purchase_id"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Total      float64   `json:"total"`
	Timestamp  time.Time `json:"timestamp"`
}

// ProductViewedEvent is emitted when a product detail view is recorded
// for the first time
type ProductViewedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypePurchaseSubmitted = "purchase.submitted"
	EventTypeProductViewed     = "product.viewed"
)

// Kafka topics
const (
	TopicPurchaseSubmitted = "purchase-submitted"
	TopicProductViewed     = "product-viewed"
)
