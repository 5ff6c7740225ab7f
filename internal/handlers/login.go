package handlers

//go:generate mockgen -source=login.go -destination=mock_login.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// LoginPath is where the session guard sends anonymous requests.
const LoginPath = "/login"

const invalidCredentials = "invalid username or password"

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// default: alice
	Username string `json:"username"`

	// Password
	// required: true
	// default: abc12345
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for user login.
// Unknown users and wrong passwords get the same response.
// @Summary User login
// @Description Checks the credentials, opens a session and redirects to the dashboard
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 303 {object} handlers.SessionResponse "Logged in, redirect to dashboard"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer, cookie SessionCookie, rec AuthRecorder) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		var req LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			return badRequest("invalid request body")
		}

		user, token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			recordAuth(rec, "login", authOutcome(err))
			if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrAuthentication) {
				return Rejected{Status: http.StatusUnauthorized, Message: invalidCredentials}
			}
			return rejectError(err, "login failed", "username", req.Username)
		}

		recordAuth(rec, "login", "success")
		return Redirect{
			Location: DashboardPath,
			Cookies:  []*http.Cookie{cookie.issue(token)},
			Body:     SessionResponse{Token: token, User: user.Identity()},
		}
	})
}
