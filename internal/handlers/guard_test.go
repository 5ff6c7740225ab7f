package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/jwt"
	"github.com/sbilibin2017/gw-inventory/internal/middlewares"
)

func TestProtectedRoutes_RedirectAnonymousWithoutCallingServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	products := NewMockProductService(ctrl)
	categories := NewMockCategoryService(ctrl)
	dashboard := NewMockDashboardReader(ctrl)
	exporter := NewMockExporter(ctrl)
	authorizer := middlewares.NewMockAuthorizer(ctrl)
	// no EXPECT calls: any service or authorizer call fails the test

	tokens := jwt.New(jwt.WithSecretKey("secret"))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middlewares.SessionGuard(tokens, authorizer, LoginPath, nil))
		r.Get("/dashboard", NewDashboardHandler(dashboard))
		r.Get("/products", NewListProductsHandler(products))
		r.Post("/products", NewCreateProductHandler(products))
		r.Delete("/products/{id}", NewDeleteProductHandler(products))
		r.Get("/categories", NewListCategoriesHandler(categories))
		r.Get("/export/csv", NewExportCSVHandler(exporter, nil))
	})

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/dashboard", nil),
		httptest.NewRequest(http.MethodGet, "/products", nil),
		httptest.NewRequest(http.MethodPost, "/products", nil),
		httptest.NewRequest(http.MethodDelete, "/products/"+uuid.NewString(), nil),
		httptest.NewRequest(http.MethodGet, "/categories", nil),
		httptest.NewRequest(http.MethodGet, "/export/csv", nil),
	}

	for _, req := range requests {
		t.Run(req.Method+" "+req.URL.Path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != LoginPath {
				t.Fatalf("expected redirect to %s, got %d %q", LoginPath, rr.Code, rr.Header().Get("Location"))
			}
		})
	}
}
