package handlers

//go:generate mockgen -source=category.go -destination=mock_category.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

// CategoryService defines the category operations used by the handlers.
type CategoryService interface {
	Create(ctx context.Context, name, description string) (*models.CategoryDB, error)
	List(ctx context.Context) ([]models.CategoryDB, error)
}

// CategoryRequest represents the JSON body for creating a category
// swagger:model CategoryRequest
type CategoryRequest struct {
	// Category name
	// required: true
	// default: Tools
	Name string `json:"name"`

	// Free text description
	Description string `json:"description"`
}

// CategoryResponse represents a category
// swagger:model CategoryResponse
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListResponse represents a list of categories
// swagger:model CategoryListResponse
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func toCategoryResponse(c *models.CategoryDB) CategoryResponse {
	return CategoryResponse{ID: c.CategoryID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

// NewListCategoriesHandler returns an HTTP handler listing categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} handlers.CategoryListResponse "Categories"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /categories [get]
// @Security SessionCookie
func NewListCategoriesHandler(svc CategoryService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		categories, err := svc.List(r.Context())
		if err != nil {
			return internalError(err, "failed to list categories")
		}

		resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
		for i := range categories {
			resp.Categories = append(resp.Categories, toCategoryResponse(&categories[i]))
		}
		return Success{Status: http.StatusOK, Body: resp}
	})
}

// NewCreateCategoryHandler returns an HTTP handler creating a category.
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryRequest body handlers.CategoryRequest true "Category"
// @Success 201 {object} handlers.CategoryResponse "Created category"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /categories [post]
// @Security SessionCookie
func NewCreateCategoryHandler(svc CategoryService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		var req CategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			return badRequest("invalid request body")
		}

		category, err := svc.Create(r.Context(), req.Name, req.Description)
		if err != nil {
			return rejectError(err, "failed to create category", "name", req.Name)
		}
		return Success{Status: http.StatusCreated, Body: toCategoryResponse(category)}
	})
}
