package handlers

//go:generate mockgen -source=product.go -destination=mock_product.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/sbilibin2017/gw-inventory/internal/services"
)

// ProductService defines the product operations used by the handlers.
type ProductService interface {
	Create(ctx context.Context, in models.ProductInput) (*models.ProductDB, error)
	Get(ctx context.Context, productID uuid.UUID) (*models.ProductDB, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error)
	LowStock(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error)
	Update(ctx context.Context, productID uuid.UUID, in models.ProductInput) (*models.ProductDB, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	Threshold() int
}

// ProductRequest represents the JSON body for creating or updating a product
// swagger:model ProductRequest
type ProductRequest struct {
	// Product name
	// required: true
	// default: Hammer
	Name string `json:"name"`

	// Free text description
	Description string `json:"description"`

	// Unit price, not negative
	// required: true
	// default: 12.5
	Price *float64 `json:"price"`

	// Units in stock, not negative
	// required: true
	// default: 10
	StockQuantity *int `json:"stock_quantity"`

	// Category id
	// required: true
	CategoryID string `json:"category_id"`
}

// ProductResponse represents a product
// swagger:model ProductResponse
type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse represents a list of products
// swagger:model ProductListResponse
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// LowStockResponse represents the low stock report
// swagger:model LowStockResponse
type LowStockResponse struct {
	// Products at or below this stock level are listed
	// default: 5
	Threshold int               `json:"threshold"`
	Products  []ProductResponse `json:"products"`
}

func (req ProductRequest) input() models.ProductInput {
	return models.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	}
}

func toProductResponse(p *models.ProductDB) ProductResponse {
	return ProductResponse{
		ID:            p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []models.ProductDB) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

// productID reads the {id} URL parameter. A malformed id cannot name an
// existing product, so it is reported as not found.
func productID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

var productNotFound = Rejected{Status: http.StatusNotFound, Message: services.ErrProductNotFound.Error()}

// NewListProductsHandler returns an HTTP handler listing products.
// @Summary List products
// @Description Products ordered by category and name, optionally restricted to one category
// @Tags products
// @Produce json
// @Param category query string false "Category id"
// @Success 200 {object} handlers.ProductListResponse "Products"
// @Failure 400 {object} handlers.ErrorResponse "Malformed category"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /products [get]
// @Security SessionCookie
func NewListProductsHandler(svc ProductService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		filter, err := services.ParseProductFilter(r.URL.Query().Get("category"))
		if err != nil {
			return rejectError(err, "invalid product filter")
		}

		products, err := svc.List(r.Context(), filter)
		if err != nil {
			return internalError(err, "failed to list products")
		}
		return Success{Status: http.StatusOK, Body: ProductListResponse{Products: toProductResponses(products)}}
	})
}

// NewLowStockHandler returns an HTTP handler for the low stock report.
// @Summary Low stock report
// @Description Products at or below the low stock threshold, lowest stock first
// @Tags products
// @Produce json
// @Param category query string false "Category id"
// @Success 200 {object} handlers.LowStockResponse "Low stock products"
// @Failure 400 {object} handlers.ErrorResponse "Malformed category"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /products/low-stock [get]
// @Security SessionCookie
func NewLowStockHandler(svc ProductService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		filter, err := services.ParseProductFilter(r.URL.Query().Get("category"))
		if err != nil {
			return rejectError(err, "invalid product filter")
		}

		products, err := svc.LowStock(r.Context(), filter)
		if err != nil {
			return internalError(err, "failed to list low stock products")
		}
		return Success{Status: http.StatusOK, Body: LowStockResponse{
			Threshold: svc.Threshold(),
			Products:  toProductResponses(products),
		}}
	})
}

// NewCreateProductHandler returns an HTTP handler creating a product.
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param productRequest body handlers.ProductRequest true "Product"
// @Success 201 {object} handlers.ProductResponse "Created product"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /products [post]
// @Security SessionCookie
func NewCreateProductHandler(svc ProductService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		var req ProductRequest
		if err := decodeJSON(r, &req); err != nil {
			return badRequest("invalid request body")
		}

		product, err := svc.Create(r.Context(), req.input())
		if err != nil {
			return rejectError(err, "failed to create product", "name", req.Name)
		}
		return Success{Status: http.StatusCreated, Body: toProductResponse(product)}
	})
}

// NewGetProductHandler returns an HTTP handler for product detail.
// @Summary Product detail
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} handlers.ProductResponse "Product"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /products/{id} [get]
// @Security SessionCookie
func NewGetProductHandler(svc ProductService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		id, ok := productID(r)
		if !ok {
			return productNotFound
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			return rejectError(err, "failed to get product", "product_id", id)
		}
		return Success{Status: http.StatusOK, Body: toProductResponse(product)}
	})
}

// NewUpdateProductHandler returns an HTTP handler updating a product.
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param productRequest body handlers.ProductRequest true "Product"
// @Success 200 {object} handlers.ProductResponse "Updated product"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /products/{id} [put]
// @Security SessionCookie
func NewUpdateProductHandler(svc ProductService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		id, ok := productID(r)
		if !ok {
			return productNotFound
		}

		var req ProductRequest
		if err := decodeJSON(r, &req); err != nil {
			return badRequest("invalid request body")
		}

		product, err := svc.Update(r.Context(), id, req.input())
		if err != nil {
			return rejectError(err, "failed to update product", "product_id", id)
		}
		return Success{Status: http.StatusOK, Body: toProductResponse(product)}
	})
}

// NewDeleteProductHandler returns an HTTP handler deleting a product.
// @Summary Delete product
// @Tags products
// @Param id path string true "Product id"
// @Success 204 "Deleted"
// @Failure 404 {object} handlers.ErrorResponse "Product not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /products/{id} [delete]
// @Security SessionCookie
func NewDeleteProductHandler(svc ProductService) http.HandlerFunc {
	return handle(func(r *http.Request) Outcome {
		id, ok := productID(r)
		if !ok {
			return productNotFound
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			return rejectError(err, "failed to delete product", "product_id", id)
		}
		return Success{Status: http.StatusNoContent}
	})
}
