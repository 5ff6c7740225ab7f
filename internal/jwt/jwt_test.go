package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))

	userID := uuid.New()
	sessionID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID, sessionID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, sessionID.String(), claims.ID)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	err = j.Validate(ctx, token)
	assert.Error(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	err := j.Validate(ctx, "invalid.token.string")
	assert.Error(t, err)

	claims, err := j.GetClaims(ctx, "invalid.token.string")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_MissingSessionClaims(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	// Signed with the right key but without user_id/sid.
	raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	assert.NoError(t, err)

	claims, err := j.GetClaims(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	j := New(WithSecretKey("secret"))

	raw := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
		"user_id": uuid.NewString(),
		"sid":     uuid.NewString(),
		"exp":     time.Now().Add(time.Minute).Unix(),
	})
	token, err := raw.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	assert.Error(t, j.Validate(context.Background(), token))
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New()
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		cookie        string
		expectedToken string
		expectError   bool
	}{
		{"ValidBearer", "Bearer mytoken123", "", "mytoken123", false},
		{"LowercaseBearer", "bearer mytoken123", "", "mytoken123", false},
		{"HeaderWinsOverCookie", "Bearer fromheader", "fromcookie", "fromheader", false},
		{"CookieOnly", "", "fromcookie", "fromcookie", false},
		{"NoHeaderNoCookie", "", "", "", true},
		{"InvalidFormat", "Token mytoken123", "", "", true},
		{"TooManyParts", "Bearer a b c", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: tt.cookie})
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}

func TestJWT_CustomCookieName(t *testing.T) {
	j := New(WithCookieName("inv_session"))
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "inv_session", Value: "abc"})

	token, err := j.GetTokenFromRequest(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestJWT_Validate_WrongSecret(t *testing.T) {
	j1 := New(WithSecretKey("secret1"))
	j2 := New(WithSecretKey("secret2"))
	ctx := context.Background()

	token, err := j1.Generate(ctx, uuid.New(), uuid.New())
	assert.NoError(t, err)

	err = j2.Validate(ctx, token)
	assert.Error(t, err)
}
