package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// Error variables
var (
	ErrUsernameTaken      = apperr.New(apperr.ErrConflict, "username already taken")
	ErrUserNotFound       = apperr.New(apperr.ErrNotFound, "user not found")
	ErrInvalidCredentials = apperr.New(apperr.ErrAuthentication, "invalid username or password")
)

const (
	maxUsernameLength  = 150
	maxTelephoneLength = 15
	// bcrypt only accepts this many bytes of input.
	maxPasswordBytes = 72
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) error
}

// SessionEstablisher creates and destroys sessions bound to a user.
type SessionEstablisher interface {
	Establish(ctx context.Context, userID uuid.UUID) (string, error)
	Destroy(ctx context.Context, token string) error
}

// RegisterInput is the submitted registration form.
type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
	Telephone string
	Address   string
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	hasher   models.PasswordHasher
	sessions SessionEstablisher

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, hasher models.PasswordHasher, sessions SessionEstablisher) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Register validates the input, stores a new user and establishes a session for it.
// It must run inside the request transaction: when it returns an error the caller
// rolls back, so no partially created user survives.
func (svc *AuthService) Register(ctx context.Context, in RegisterInput) (*models.UserDB, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateRegistration(in); err != nil {
		logger.Log.Debugw("registration rejected", "username", in.Username, "error", err)
		return nil, "", err
	}

	existing, err := svc.reader.GetByUsername(ctx, in.Username)
	switch {
	case err == nil && existing != nil:
		logger.Log.Infow("username already taken", "username", in.Username)
		return nil, "", ErrUsernameTaken
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		logger.Log.Errorw("failed to check username", "username", in.Username, "error", err)
		return nil, "", err
	}

	user := &models.UserDB{
		Username:  in.Username,
		Email:     in.Email,
		Telephone: strings.TrimSpace(in.Telephone),
		Address:   strings.TrimSpace(in.Address),
	}
	if err := user.SetPassword(svc.hasher, in.Password1); err != nil {
		logger.Log.Errorw("failed to hash password", "username", in.Username, "error", err)
		return nil, "", err
	}

	if err := svc.writer.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			logger.Log.Infow("username already taken", "username", in.Username)
			return nil, "", ErrUsernameTaken
		}
		logger.Log.Errorw("failed to save user", "username", in.Username, "error", err)
		return nil, "", err
	}

	token, err := svc.sessions.Establish(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to establish session", "user_id", user.UserID, "error", err)
		return nil, "", err
	}

	logger.Log.Infow("user registered", "user_id", user.UserID, "username", user.Username)
	return user, token, nil
}

// Login checks the credentials and establishes a session.
// Unknown usernames still pay for one hash comparison.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.UserDB, string, error) {
	username = strings.TrimSpace(username)

	verr := apperr.NewValidationError()
	if username == "" {
		verr.Add("username", "this field is required")
	}
	if password == "" {
		verr.Add("password", "this field is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, "", err
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			svc.hasher.Check(svc.dummyPasswordHash(), password)
			logger.Log.Infow("login rejected", "username", username, "reason", "unknown user")
			return nil, "", ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "username", username, "error", err)
		return nil, "", err
	}

	if !user.CheckPassword(svc.hasher, password) {
		logger.Log.Infow("login rejected", "username", username, "reason", "password mismatch")
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.sessions.Establish(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to establish session", "user_id", user.UserID, "error", err)
		return nil, "", err
	}

	logger.Log.Infow("user logged in", "user_id", user.UserID)
	return user, token, nil
}

// Logout destroys the session behind token. An empty or stale token is not an error.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := svc.sessions.Destroy(ctx, token); err != nil {
		logger.Log.Errorw("failed to destroy session", "error", err)
		return err
	}
	return nil
}

func (svc *AuthService) dummyPasswordHash() string {
	svc.dummyOnce.Do(func() {
		hash, err := svc.hasher.Hash(uuid.NewString())
		if err != nil {
			logger.Log.Warnw("failed to prepare dummy password hash", "error", err)
			return
		}
		svc.dummyHash = hash
	})
	return svc.dummyHash
}

func validateRegistration(in RegisterInput) error {
	verr := apperr.NewValidationError()

	switch {
	case in.Username == "":
		verr.Add("username", "this field is required")
	case len(in.Username) > maxUsernameLength:
		verr.Add("username", fmt.Sprintf("ensure this value has at most %d characters", maxUsernameLength))
	}

	if in.Email == "" {
		verr.Add("email", "this field is required")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		verr.Add("email", "enter a valid email address")
	}

	switch {
	case in.Password1 == "":
		verr.Add("password1", "this field is required")
	case len(in.Password1) > maxPasswordBytes:
		verr.Add("password1", fmt.Sprintf("ensure this value has at most %d bytes", maxPasswordBytes))
	}
	if in.Password2 == "" {
		verr.Add("password2", "this field is required")
	} else if in.Password1 != "" && in.Password1 != in.Password2 {
		verr.Add("password2", "passwords do not match")
	}

	if len(strings.TrimSpace(in.Telephone)) > maxTelephoneLength {
		verr.Add("telephone", fmt.Sprintf("ensure this value has at most %d characters", maxTelephoneLength))
	}

	return verr.OrNil()
}
