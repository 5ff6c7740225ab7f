package middlewares

//go:generate mockgen -source=session.go -destination=mock_session.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// TokenExtractor pulls the session token out of a request.
type TokenExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authorizer resolves a session token to an identity without side effects.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (models.Identified, bool)
}

// RejectionObserver is notified about every request turned away by SessionGuard.
type RejectionObserver interface {
	GuardRejected(path string)
}

// SessionGuard returns a middleware that lets a request through only when it
// carries a live session. Other requests are redirected to loginPath and the
// wrapped handler is never invoked. observer may be nil.
func SessionGuard(tokens TokenExtractor, auth Authorizer, loginPath string, observer RejectionObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := tokens.GetTokenFromRequest(ctx, r)
			if err != nil {
				reject(w, r, loginPath, observer, "no session token")
				return
			}

			identity, ok := auth.Authorize(ctx, token)
			if !ok {
				reject(w, r, loginPath, observer, "session not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(models.WithIdentity(ctx, identity)))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, loginPath string, observer RejectionObserver, reason string) {
	logger.Log.Debugw("guard redirect",
		"request_id", RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"reason", reason,
	)
	if observer != nil {
		observer.GuardRejected(r.URL.Path)
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
