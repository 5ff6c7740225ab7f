package services

//go:generate mockgen -source=category.go -destination=mock_category.go -package=services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

const maxCategoryNameLength = 100

// CategoryWriter defines write operations for categories.
type CategoryWriter interface {
	Create(ctx context.Context, category *models.CategoryDB) error
}

// CategoryService handles category creation and listing.
type CategoryService struct {
	reader CategoryReader
	writer CategoryWriter
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(reader CategoryReader, writer CategoryWriter) *CategoryService {
	return &CategoryService{reader: reader, writer: writer}
}

// Create validates and stores a category.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.CategoryDB, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, apperr.FieldError("name", "this field is required")
	case len(name) > maxCategoryNameLength:
		return nil, apperr.FieldError("name", fmt.Sprintf("ensure this value has at most %d characters", maxCategoryNameLength))
	}

	category := &models.CategoryDB{Name: name, Description: strings.TrimSpace(description)}
	if err := s.writer.Create(ctx, category); err != nil {
		logger.Log.Errorw("failed to save category", "name", name, "error", err)
		return nil, err
	}

	logger.Log.Infow("category created", "category_id", category.CategoryID, "name", category.Name)
	return category, nil
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.CategoryDB, error) {
	categories, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list categories", "error", err)
		return nil, err
	}
	return categories, nil
}
