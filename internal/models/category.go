package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryDB represents a category row in the database
type CategoryDB struct {
	CategoryID  uuid.UUID `json:"id" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
