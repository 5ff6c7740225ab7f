package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-held association between a session token and a user.
type Session struct {
	SessionID uuid.UUID `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
