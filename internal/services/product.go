package services

//go:generate mockgen -source=product.go -destination=mock_product.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	ErrProductNotFound  = apperr.New(apperr.ErrNotFound, "product not found")
	ErrCategoryNotFound = apperr.New(apperr.ErrNotFound, "category not found")
)

// DefaultLowStockThreshold is the stock level at or below which a product counts as low.
const DefaultLowStockThreshold = 5

const (
	maxProductNameLength = 200
	maxPrice             = 99999999.99
	maxStockQuantity     = math.MaxInt32
)

// ProductReader defines read-only operations for products.
type ProductReader interface {
	GetByID(ctx context.Context, productID uuid.UUID) (*models.ProductDB, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error)
	ListLowStock(ctx context.Context, threshold int, filter models.ProductFilter) ([]models.ProductDB, error)
	Stats(ctx context.Context, threshold int) (*models.InventoryStats, error)
}

// ProductWriter defines write operations for products.
type ProductWriter interface {
	Create(ctx context.Context, product *models.ProductDB) error
	Update(ctx context.Context, product *models.ProductDB) error
	Delete(ctx context.Context, productID uuid.UUID) error
}

// CategoryReader defines read-only operations for categories.
type CategoryReader interface {
	GetByID(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error)
	List(ctx context.Context) ([]models.CategoryDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// CommitDeferrer runs fn once the write made under ctx is durable.
type CommitDeferrer func(ctx context.Context, fn func(context.Context))

// ProductService handles product CRUD and publishes inventory events.
type ProductService struct {
	reader      ProductReader
	writer      ProductWriter
	categories  CategoryReader
	kafkaWriter KafkaWriter
	afterCommit CommitDeferrer
	threshold   int
}

// NewProductService creates a new ProductService. A non-positive threshold
// falls back to DefaultLowStockThreshold; kafkaWriter may be nil. Events are
// handed to afterCommit so they leave only for persisted writes; a nil
// afterCommit publishes right away.
func NewProductService(
	reader ProductReader,
	writer ProductWriter,
	categories CategoryReader,
	kafkaWriter KafkaWriter,
	afterCommit CommitDeferrer,
	threshold int,
) *ProductService {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &ProductService{
		reader:      reader,
		writer:      writer,
		categories:  categories,
		kafkaWriter: kafkaWriter,
		afterCommit: afterCommit,
		threshold:   threshold,
	}
}

// Threshold returns the low-stock threshold in use.
func (s *ProductService) Threshold() int {
	return s.threshold
}

// ParseProductFilter builds a filter from the raw category query value.
// An empty value selects every category.
func ParseProductFilter(category string) (models.ProductFilter, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.ProductFilter{}, nil
	}
	id, err := uuid.Parse(category)
	if err != nil {
		return models.ProductFilter{}, apperr.FieldError("category", "select a valid category")
	}
	return models.ProductFilter{CategoryID: &id}, nil
}

// Create validates the input and stores a new product.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (*models.ProductDB, error) {
	product := &models.ProductDB{}
	if err := s.apply(ctx, product, in); err != nil {
		return nil, err
	}

	if err := s.writer.Create(ctx, product); err != nil {
		return nil, s.mapWriteError(product, err)
	}

	logger.Log.Infow("product created", "product_id", product.ProductID, "name", product.Name)
	s.publishChange(ctx, models.EventProductCreated, product)

	return product, nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*models.ProductDB, error) {
	product, err := s.reader.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Log.Errorw("failed to get product", "product_id", productID, "error", err)
		return nil, err
	}
	return product, nil
}

// List returns products ordered by category then name.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error) {
	products, err := s.reader.List(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to list products", "error", err)
		return nil, err
	}
	return products, nil
}

// LowStock returns products at or below the threshold, lowest stock first.
func (s *ProductService) LowStock(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error) {
	products, err := s.reader.ListLowStock(ctx, s.threshold, filter)
	if err != nil {
		logger.Log.Errorw("failed to list low stock products", "threshold", s.threshold, "error", err)
		return nil, err
	}
	return products, nil
}

// Update validates the input and overwrites the product.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, in models.ProductInput) (*models.ProductDB, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, product, in); err != nil {
		return nil, err
	}

	if err := s.writer.Update(ctx, product); err != nil {
		return nil, s.mapWriteError(product, err)
	}

	logger.Log.Infow("product updated", "product_id", product.ProductID, "stock_quantity", product.StockQuantity)
	s.publishChange(ctx, models.EventProductUpdated, product)

	return product, nil
}

// Delete removes the product.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, productID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrProductNotFound
		}
		logger.Log.Errorw("failed to delete product", "product_id", productID, "error", err)
		return err
	}

	logger.Log.Infow("product deleted", "product_id", productID)
	s.publish(ctx, newInventoryEvent(ctx, models.EventProductDeleted, product))

	return nil
}

// apply validates in and copies it onto product. Nothing is copied when
// validation fails.
func (s *ProductService) apply(ctx context.Context, product *models.ProductDB, in models.ProductInput) error {
	verr := apperr.NewValidationError()

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		verr.Add("name", "this field is required")
	case len(name) > maxProductNameLength:
		verr.Add("name", fmt.Sprintf("ensure this value has at most %d characters", maxProductNameLength))
	}

	switch {
	case in.Price == nil:
		verr.Add("price", "this field is required")
	case math.IsNaN(*in.Price) || *in.Price < 0:
		verr.Add("price", "ensure this value is greater than or equal to 0")
	case *in.Price > maxPrice:
		verr.Add("price", "ensure this value is less than 100000000")
	}

	switch {
	case in.StockQuantity == nil:
		verr.Add("stock_quantity", "this field is required")
	case *in.StockQuantity < 0:
		verr.Add("stock_quantity", "ensure this value is greater than or equal to 0")
	case *in.StockQuantity > maxStockQuantity:
		verr.Add("stock_quantity", fmt.Sprintf("ensure this value is less than or equal to %d", maxStockQuantity))
	}

	var category *models.CategoryDB
	categoryID, err := uuid.Parse(strings.TrimSpace(in.CategoryID))
	if err != nil {
		if strings.TrimSpace(in.CategoryID) == "" {
			verr.Add("category_id", "this field is required")
		} else {
			verr.Add("category_id", "select a valid category")
		}
	} else {
		category, err = s.category(ctx, categoryID)
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			verr.Add("category_id", "select a valid category")
		case err != nil:
			return err
		}
	}

	if err := verr.OrNil(); err != nil {
		logger.Log.Debugw("product input rejected", "error", err)
		return err
	}

	product.Name = name
	product.Description = strings.TrimSpace(in.Description)
	product.Price = math.Round(*in.Price*100) / 100
	product.StockQuantity = *in.StockQuantity
	product.CategoryID = category.CategoryID
	product.CategoryName = category.Name

	return nil
}

func (s *ProductService) category(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Log.Errorw("failed to get category", "category_id", categoryID, "error", err)
		return nil, err
	}
	return category, nil
}

// mapWriteError turns a vanished row into ErrProductNotFound. Validation
// errors from the store (a category deleted meanwhile) pass through.
func (s *ProductService) mapWriteError(product *models.ProductDB, err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return err
	case errors.Is(err, apperr.ErrNotFound):
		return ErrProductNotFound
	}
	logger.Log.Errorw("failed to save product", "product_id", product.ProductID, "error", err)
	return err
}

func (s *ProductService) publishChange(ctx context.Context, eventType string, product *models.ProductDB) {
	events := []models.InventoryEvent{newInventoryEvent(ctx, eventType, product)}
	if product.StockQuantity <= s.threshold {
		events = append(events, newInventoryEvent(ctx, models.EventLowStock, product))
	}
	s.publish(ctx, events...)
}

// publish sends events once the surrounding transaction has committed.
func (s *ProductService) publish(ctx context.Context, events ...models.InventoryEvent) {
	send := func(ctx context.Context) {
		for _, event := range events {
			s.publishEvent(ctx, event)
		}
	}
	if s.afterCommit == nil {
		send(ctx)
		return
	}
	s.afterCommit(ctx, send)
}

func newInventoryEvent(ctx context.Context, eventType string, product *models.ProductDB) models.InventoryEvent {
	event := models.InventoryEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		ProductID:     product.ProductID.String(),
		Name:          product.Name,
		StockQuantity: product.StockQuantity,
		Timestamp:     time.Now().Unix(),
	}
	if id, ok := models.IdentityFromContext(ctx).(models.Identified); ok {
		event.UserID = id.ID.String()
	}
	return event
}

// publishEvent publishes an inventory event to Kafka.
func (s *ProductService) publishEvent(ctx context.Context, event models.InventoryEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "type", event.Type, "error", err)
	} else {
		logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "type", event.Type)
	}
}
