package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// ErrSessionExpired is returned by Create for a session whose expiry already passed.
var ErrSessionExpired = errors.New("session already expired")

// SessionRepository keeps sessions in Redis, expiring with the session itself.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new repository instance
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Create stores the session until its ExpiresAt.
func (r *SessionRepository) Create(ctx context.Context, s models.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	key := sessionKey(s.SessionID)
	err = r.client.Set(ctx, key, data, ttl).Err()

	logger.Log.Infow("session stored",
		"key", key,
		"user_id", s.UserID,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// Get returns apperr.ErrNotFound for unknown or expired sessions.
func (r *SessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*models.Session, error) {
	key := sessionKey(sessionID)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Infow("session lookup",
			"key", key,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	var s models.Session
	if err := json.Unmarshal(val, &s); err != nil {
		logger.Log.Warnw("corrupted session entry", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow("session lookup",
		"key", key,
		"user_id", s.UserID,
		"error", nil,
	)

	return &s, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	key := sessionKey(sessionID)
	n, err := r.client.Del(ctx, key).Result()

	logger.Log.Infow("session deleted",
		"key", key,
		"result", n,
		"error", err,
	)

	return err
}
