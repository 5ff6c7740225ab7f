package services

//go:generate mockgen -source=session.go -destination=mock_session.go -package=services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/jwt"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// SessionStore keeps server-side session state.
type SessionStore interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, sessionID uuid.UUID) (*models.Session, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// TokenIssuer signs and parses session tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID, sessionID uuid.UUID) (string, error)
	GetClaims(ctx context.Context, token string) (*jwt.Claims, error)
}

// SessionService binds session tokens to users.
type SessionService struct {
	users  UserReader
	store  SessionStore
	tokens TokenIssuer
	ttl    time.Duration
}

// NewSessionService creates a new SessionService.
func NewSessionService(users UserReader, store SessionStore, tokens TokenIssuer, ttl time.Duration) *SessionService {
	return &SessionService{
		users:  users,
		store:  store,
		tokens: tokens,
		ttl:    ttl,
	}
}

// Establish stores a fresh session for userID and returns its signed token.
func (s *SessionService) Establish(ctx context.Context, userID uuid.UUID) (string, error) {
	session := models.Session{
		SessionID: uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.store.Create(ctx, session); err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(ctx, userID, session.SessionID)
	if err != nil {
		if delErr := s.store.Delete(ctx, session.SessionID); delErr != nil {
			logger.Log.Warnw("failed to drop unused session", "session_id", session.SessionID, "error", delErr)
		}
		return "", err
	}

	return token, nil
}

// Destroy deletes the session behind token. Tokens that no longer parse
// (expired, tampered) carry no session to delete and are ignored.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	claims, err := s.tokens.GetClaims(ctx, token)
	if err != nil {
		logger.Log.Debugw("logout with unusable token", "error", err)
		return nil
	}
	return s.store.Delete(ctx, claims.SessionID)
}

// Authorize resolves token to an identity. It never writes anything, and any
// failure along the way yields false.
func (s *SessionService) Authorize(ctx context.Context, token string) (models.Identified, bool) {
	if token == "" {
		return models.Identified{}, false
	}

	claims, err := s.tokens.GetClaims(ctx, token)
	if err != nil {
		logger.Log.Debugw("session token rejected", "error", err)
		return models.Identified{}, false
	}

	session, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			logger.Log.Warnw("session lookup failed", "session_id", claims.SessionID, "error", err)
		}
		return models.Identified{}, false
	}
	if session.UserID != claims.UserID || !time.Now().Before(session.ExpiresAt) {
		logger.Log.Debugw("session does not match token", "session_id", claims.SessionID)
		return models.Identified{}, false
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			logger.Log.Warnw("session user lookup failed", "user_id", session.UserID, "error", err)
		}
		return models.Identified{}, false
	}

	return user.Identity(), true
}
