package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/jwt"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/sbilibin2017/gw-inventory/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Establish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := services.NewMockSessionStore(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	svc := services.NewSessionService(services.NewMockUserReader(ctrl), mockStore, mockTokens, time.Hour)

	userID := uuid.New()

	t.Run("stores session and signs token", func(t *testing.T) {
		var stored models.Session
		mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s models.Session) error {
			stored = s
			return nil
		})
		mockTokens.EXPECT().Generate(gomock.Any(), userID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, sessionID uuid.UUID) (string, error) {
				assert.Equal(t, stored.SessionID, sessionID)
				return "token123", nil
			})

		token, err := svc.Establish(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "token123", token)
		assert.Equal(t, userID, stored.UserID)
		assert.WithinDuration(t, time.Now().Add(time.Hour), stored.ExpiresAt, time.Minute)
	})

	t.Run("store error", func(t *testing.T) {
		mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		token, err := svc.Establish(context.Background(), userID)
		assert.EqualError(t, err, "redis down")
		assert.Empty(t, token)
	})

	t.Run("signing error drops session", func(t *testing.T) {
		mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		mockTokens.EXPECT().Generate(gomock.Any(), userID, gomock.Any()).Return("", errors.New("sign error"))
		mockStore.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Establish(context.Background(), userID)
		assert.EqualError(t, err, "sign error")
	})
}

func TestSessionService_Destroy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := services.NewMockSessionStore(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	svc := services.NewSessionService(services.NewMockUserReader(ctrl), mockStore, mockTokens, time.Hour)

	sessionID := uuid.New()

	mockTokens.EXPECT().GetClaims(gomock.Any(), "good").Return(&jwt.Claims{SessionID: sessionID}, nil)
	mockStore.EXPECT().Delete(gomock.Any(), sessionID).Return(nil)
	assert.NoError(t, svc.Destroy(context.Background(), "good"))

	mockTokens.EXPECT().GetClaims(gomock.Any(), "stale").Return(nil, jwt.ErrInvalidToken)
	assert.NoError(t, svc.Destroy(context.Background(), "stale"))
}

func TestSessionService_Authorize(t *testing.T) {
	userID := uuid.New()
	sessionID := uuid.New()
	user := &models.UserDB{UserID: userID, Username: "alice", Email: "alice@example.com"}
	claims := &jwt.Claims{UserID: userID, SessionID: sessionID}
	live := &models.Session{SessionID: sessionID, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name   string
		token  string
		setup  func(u *services.MockUserReader, s *services.MockSessionStore, tk *services.MockTokenIssuer)
		wantOK bool
	}{
		{
			name:  "valid session",
			token: "good",
			setup: func(u *services.MockUserReader, s *services.MockSessionStore, tk *services.MockTokenIssuer) {
				tk.EXPECT().GetClaims(gomock.Any(), "good").Return(claims, nil)
				s.EXPECT().Get(gomock.Any(), sessionID).Return(live, nil)
				u.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
			},
			wantOK: true,
		},
		{
			name:  "no token",
			token: "",
		},
		{
			name:  "bad token",
			token: "bad",
			setup: func(u *services.MockUserReader, s *services.MockSessionStore, tk *services.MockTokenIssuer) {
				tk.EXPECT().GetClaims(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)
			},
		},
		{
			name:  "session gone",
			token: "good",
			setup: func(u *services.MockUserReader, s *services.MockSessionStore, tk *services.MockTokenIssuer) {
				tk.EXPECT().GetClaims(gomock.Any(), "good").Return(claims, nil)
				s.EXPECT().Get(gomock.Any(), sessionID).Return(nil, apperr.ErrNotFound)
			},
		},
		{
			name:  "session of another user",
			token: "good",
			setup: func(u *services.MockUserReader, s *services.MockSessionStore, tk *services.MockTokenIssuer) {
				tk.EXPECT().GetClaims(gomock.Any(), "good").Return(claims, nil)
				s.EXPECT().Get(gomock.Any(), sessionID).Return(&models.Session{
					SessionID: sessionID, UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
			},
		},
		{
			name:  "user deleted",
			token: "good",
			setup: func(u *services.MockUserReader, s *services.MockSessionStore, tk *services.MockTokenIssuer) {
				tk.EXPECT().GetClaims(gomock.Any(), "good").Return(claims, nil)
				s.EXPECT().Get(gomock.Any(), sessionID).Return(live, nil)
				u.EXPECT().GetByID(gomock.Any(), userID).Return(nil, apperr.ErrNotFound)
			},
		},
		{
			name:  "store error",
			token: "good",
			setup: func(u *services.MockUserReader, s *services.MockSessionStore, tk *services.MockTokenIssuer) {
				tk.EXPECT().GetClaims(gomock.Any(), "good").Return(claims, nil)
				s.EXPECT().Get(gomock.Any(), sessionID).Return(nil, errors.New("redis down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUsers := services.NewMockUserReader(ctrl)
			mockStore := services.NewMockSessionStore(ctrl)
			mockTokens := services.NewMockTokenIssuer(ctrl)
			if tt.setup != nil {
				tt.setup(mockUsers, mockStore, mockTokens)
			}

			svc := services.NewSessionService(mockUsers, mockStore, mockTokens, time.Hour)
			identity, ok := svc.Authorize(context.Background(), tt.token)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, models.Identified{ID: userID, Username: "alice", Email: "alice@example.com"}, identity)
			} else {
				assert.Equal(t, models.Identified{}, identity)
			}
		})
	}
}

func TestSessionService_AuthorizeRejectsRepeatedlyWithoutWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := services.NewMockSessionStore(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	claims := &jwt.Claims{UserID: uuid.New(), SessionID: uuid.New()}

	mockTokens.EXPECT().GetClaims(gomock.Any(), "orphan").Return(claims, nil).Times(2)
	mockStore.EXPECT().Get(gomock.Any(), claims.SessionID).Return(nil, apperr.ErrNotFound).Times(2)
	mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	mockStore.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	svc := services.NewSessionService(services.NewMockUserReader(ctrl), mockStore, mockTokens, time.Hour)

	first, ok1 := svc.Authorize(context.Background(), "orphan")
	second, ok2 := svc.Authorize(context.Background(), "orphan")

	assert.False(t, ok1)
	assert.False(t, ok2)
	assert.Equal(t, first, second)
}

func TestSessionService_WithRealTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := services.NewMockUserReader(ctrl)
	mockStore := services.NewMockSessionStore(ctrl)
	tokens := jwt.New(jwt.WithSecretKey("secret"), jwt.WithExpiration(time.Hour))
	svc := services.NewSessionService(mockUsers, mockStore, tokens, time.Hour)

	user := &models.UserDB{UserID: uuid.New(), Username: "alice"}
	var stored models.Session
	mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s models.Session) error {
		stored = s
		return nil
	})

	token, err := svc.Establish(context.Background(), user.UserID)
	require.NoError(t, err)

	mockStore.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.Session, error) {
		assert.Equal(t, stored.SessionID, id)
		return &stored, nil
	})
	mockUsers.EXPECT().GetByID(gomock.Any(), user.UserID).Return(user, nil)

	identity, ok := svc.Authorize(context.Background(), token)
	assert.True(t, ok)
	assert.Equal(t, "alice", identity.Username)
}
