package models

// Inventory event types published to Kafka.
const (
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
	EventLowStock       = "low_stock"
)

// InventoryEvent describes a change to the product catalog.
type InventoryEvent struct {
	EventID       string `json:"event_id"`       // Unique identifier of the event
	Type          string `json:"type"`           // One of the Event* constants
	ProductID     string `json:"product_id"`     // Affected product
	Name          string `json:"name"`           // Product name at the time of the event
	StockQuantity int    `json:"stock_quantity"` // Stock after the change
	UserID        string `json:"user_id"`        // Who made the change, empty if unknown
	Timestamp     int64  `json:"timestamp"`      // Unix seconds
}
