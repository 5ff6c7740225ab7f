package handlers

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/sbilibin2017/gw-inventory/internal/services"
)

// DashboardPath is where successful authentication lands.
const DashboardPath = "/dashboard"

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.UserDB, string, error)
}

// AuthRecorder counts authentication attempts by outcome.
type AuthRecorder interface {
	AuthAttempt(operation, outcome string)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: alice
	Username string `json:"username"`

	// Email
	// required: true
	// default: alice@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: abc12345
	Password1 string `json:"password1"`

	// Password confirmation
	// required: true
	// default: abc12345
	Password2 string `json:"password2"`

	// Telephone, at most 15 characters
	Telephone string `json:"telephone"`

	// Postal address
	Address string `json:"address"`
}

// SessionResponse is returned alongside the redirect once a session exists
// swagger:model SessionResponse
type SessionResponse struct {
	// Session token, also set as cookie
	// default: JWT_TOKEN
	Token string `json:"token"`

	// Authenticated user
	User models.Identified `json:"user"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user with a unique username, stores a bcrypt hash of the password and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 303 {object} handlers.SessionResponse "Registered, redirect to dashboard"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} handlers.ErrorResponse "Username already taken"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer, cookie SessionCookie, rec AuthRecorder) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		var req RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			return badRequest("invalid request body")
		}

		user, token, err := svc.Register(r.Context(), services.RegisterInput{
			Username:  req.Username,
			Email:     req.Email,
			Password1: req.Password1,
			Password2: req.Password2,
			Telephone: req.Telephone,
			Address:   req.Address,
		})
		if err != nil {
			recordAuth(rec, "register", authOutcome(err))
			return rejectError(err, "registration failed", "username", req.Username)
		}

		recordAuth(rec, "register", "success")
		return Redirect{
			Location: DashboardPath,
			Cookies:  []*http.Cookie{cookie.issue(token)},
			Body:     SessionResponse{Token: token, User: user.Identity()},
		}
	})
}

func recordAuth(rec AuthRecorder, operation, outcome string) {
	if rec != nil {
		rec.AuthAttempt(operation, outcome)
	}
}

func authOutcome(err error) string {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return "invalid"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrAuthentication):
		return "rejected"
	}
	return "error"
}
