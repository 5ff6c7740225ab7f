package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductDB represents a product row in the database.
// CategoryName is filled by queries joining categories.
type ProductDB struct {
	ProductID     uuid.UUID `json:"id" db:"product_id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	CategoryID    uuid.UUID `json:"category_id" db:"category_id"`
	CategoryName  string    `json:"category_name" db:"category_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ProductInput is the unvalidated payload of a product create or update.
// Pointer fields distinguish a missing value from a zero value.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	CategoryID    string   `json:"category_id"`
}

// ProductFilter narrows product listings. A nil CategoryID means all categories.
type ProductFilter struct {
	CategoryID *uuid.UUID
}
