package handlers

//go:generate mockgen -source=dashboard.go -destination=mock_dashboard.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// DashboardReader builds the dashboard for a user.
type DashboardReader interface {
	Dashboard(ctx context.Context, user models.Identified) (*models.Dashboard, error)
}

// NewDashboardHandler returns an HTTP handler for the dashboard.
// @Summary Dashboard
// @Description Inventory counters and the UI feature flags of the current user
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.Dashboard "Dashboard"
// @Success 303 "No session, redirect to login"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /dashboard [get]
// @Security SessionCookie
func NewDashboardHandler(svc DashboardReader) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		user, ok := currentUser(r)
		if !ok {
			return Redirect{Location: LoginPath}
		}

		dashboard, err := svc.Dashboard(r.Context(), user)
		if err != nil {
			return internalError(err, "failed to build dashboard", "user_id", user.ID)
		}
		return Success{Status: http.StatusOK, Body: dashboard}
	})
}

func currentUser(r *http.Request) (models.Identified, bool) {
	user, ok := models.IdentityFromContext(r.Context()).(models.Identified)
	return user, ok
}
