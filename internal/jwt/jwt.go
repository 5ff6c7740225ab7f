package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "session"

var (
	ErrTokenMissing        = errors.New("session token missing")
	ErrInvalidHeaderFormat = errors.New("invalid authorization header format")
	ErrInvalidToken        = errors.New("invalid token")
)

// Claims are the session token claims.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	SessionID uuid.UUID `json:"sid"`
	jwt.RegisteredClaims
}

// JWT signs and parses session tokens.
type JWT struct {
	SecretKey  string        // Secret key for signing tokens
	Exp        time.Duration // Token expiration duration
	CookieName string        // Cookie read by GetTokenFromRequest
}

// Opt configures a JWT.
type Opt func(*JWT)

// WithSecretKey sets the HMAC signing key.
func WithSecretKey(key string) Opt {
	return func(j *JWT) { j.SecretKey = key }
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) { j.Exp = exp }
}

// WithCookieName overrides DefaultCookieName.
func WithCookieName(name string) Opt {
	return func(j *JWT) { j.CookieName = name }
}

// New creates a new JWT instance
func New(opts ...Opt) *JWT {
	j := &JWT{
		Exp:        time.Hour,
		CookieName: DefaultCookieName,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a token binding sessionID to userID.
func (j *JWT) Generate(ctx context.Context, userID, sessionID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Exp)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClaims parses and verifies the token, returning its claims.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil || claims.SessionID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate checks signature, expiry and required claims.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetTokenFromRequest extracts the token from the Authorization header,
// falling back to the session cookie.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", ErrInvalidHeaderFormat
		}
		return parts[1], nil
	}

	cookie, err := r.Cookie(j.CookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrTokenMissing
	}
	return cookie.Value, nil
}
