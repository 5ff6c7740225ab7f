package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/42", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/products/{id}", http.MethodGet, "404")))
}

func TestAuthCounters(t *testing.T) {
	m := New()

	m.AuthAttempt("login", OutcomeRejected)
	m.AuthAttempt("login", OutcomeRejected)
	m.AuthAttempt("register", OutcomeSuccess)
	m.GuardRejected("/dashboard")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authAttempts.WithLabelValues("login", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authAttempts.WithLabelValues("register", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.guardRejections.WithLabelValues("/dashboard")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.GuardRejected("/products")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "inventory_session_guard_rejections_total")
}
