package handlers

//go:generate mockgen -source=logout.go -destination=mock_logout.go -package=handlers

import (
	"context"
	"net/http"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// TokenGetter extracts the session token from a request.
type TokenGetter interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// NewLogoutHandler returns an HTTP handler ending the current session.
// @Summary User logout
// @Description Destroys the current session, if any, clears the cookie and redirects to login. Safe to repeat.
// @Tags auth
// @Success 303 "Logged out, redirect to login"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter, tokens TokenGetter, cookie SessionCookie) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		ctx := r.Context()

		// a missing token still logs out
		token, _ := tokens.GetTokenFromRequest(ctx, r)

		if err := svc.Logout(ctx, token); err != nil {
			return internalError(err, "logout failed")
		}

		return Redirect{
			Location: LoginPath,
			Cookies:  []*http.Cookie{cookie.clear()},
		}
	})
}
