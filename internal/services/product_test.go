package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/sbilibin2017/gw-inventory/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type productMocks struct {
	reader     *services.MockProductReader
	writer     *services.MockProductWriter
	categories *services.MockCategoryReader
	kafka      *services.MockKafkaWriter
}

func newProductService(ctrl *gomock.Controller) (*services.ProductService, productMocks) {
	m := productMocks{
		reader:     services.NewMockProductReader(ctrl),
		writer:     services.NewMockProductWriter(ctrl),
		categories: services.NewMockCategoryReader(ctrl),
		kafka:      services.NewMockKafkaWriter(ctrl),
	}
	return services.NewProductService(m.reader, m.writer, m.categories, m.kafka, nil, 5), m
}

func eventTypes(msgs []kafka.Message) []string {
	types := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		var e models.InventoryEvent
		if err := json.Unmarshal(msg.Value, &e); err == nil {
			types = append(types, e.Type)
		}
	}
	return types
}

func TestProductService_Create(t *testing.T) {
	category := &models.CategoryDB{CategoryID: uuid.New(), Name: "Tools"}

	t.Run("stores product and publishes events", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		var published []kafka.Message
		m.categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *models.ProductDB) error {
			p.ProductID = uuid.New()
			return nil
		})
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			published = append(published, msgs...)
			return nil
		}).Times(2)

		p, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "  Hammer ",
			Price:         ptr(12.499),
			StockQuantity: ptr(3),
			CategoryID:    category.CategoryID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Hammer", p.Name)
		assert.Equal(t, 12.5, p.Price)
		assert.Equal(t, "Tools", p.CategoryName)
		assert.Equal(t, []string{models.EventProductCreated, models.EventLowStock}, eventTypes(published))
	})

	t.Run("negative stock is rejected before storing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		m.categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		p, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "Saw",
			Price:         ptr(9.0),
			StockQuantity: ptr(-1),
			CategoryID:    category.CategoryID.String(),
		})

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "stock_quantity")
		assert.Nil(t, p)
	})

	t.Run("stock above integer range is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		m.categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "Nails",
			Price:         ptr(0.1),
			StockQuantity: ptr(1 << 40),
			CategoryID:    category.CategoryID.String(),
		})

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "ensure this value is less than or equal to 2147483647", verr.Fields["stock_quantity"])
	})

	t.Run("stock at integer limit is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		m.categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		p, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "Nails",
			Price:         ptr(0.1),
			StockQuantity: ptr(math.MaxInt32),
			CategoryID:    category.CategoryID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt32, p.StockQuantity)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newProductService(ctrl)

		_, err := svc.Create(context.Background(), models.ProductInput{})

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		for _, field := range []string{"name", "price", "stock_quantity", "category_id"} {
			assert.Contains(t, verr.Fields, field)
		}
	})

	t.Run("negative price and malformed category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _ := newProductService(ctrl)

		_, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "Saw",
			Price:         ptr(-0.01),
			StockQuantity: ptr(1),
			CategoryID:    "nope",
		})

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "select a valid category", verr.Fields["category_id"])
		assert.Contains(t, verr.Fields, "price")
	})

	t.Run("unknown category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		missing := uuid.New()
		m.categories.EXPECT().GetByID(gomock.Any(), missing).Return(nil, apperr.ErrNotFound)

		_, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "Saw",
			Price:         ptr(1.0),
			StockQuantity: ptr(1),
			CategoryID:    missing.String(),
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		m.categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "Drill",
			Price:         ptr(80.0),
			StockQuantity: ptr(50),
			CategoryID:    category.CategoryID.String(),
		})
		assert.NoError(t, err)
	})

	t.Run("without kafka", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := services.NewMockProductReader(ctrl)
		writer := services.NewMockProductWriter(ctrl)
		categories := services.NewMockCategoryReader(ctrl)
		svc := services.NewProductService(reader, writer, categories, nil, nil, 0)

		categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Create(context.Background(), models.ProductInput{
			Name:          "Drill",
			Price:         ptr(80.0),
			StockQuantity: ptr(0),
			CategoryID:    category.CategoryID.String(),
		})
		assert.NoError(t, err)
		assert.Equal(t, services.DefaultLowStockThreshold, svc.Threshold())
	})
}

func TestProductService_GetUpdateDelete(t *testing.T) {
	category := &models.CategoryDB{CategoryID: uuid.New(), Name: "Tools"}
	existing := func() *models.ProductDB {
		return &models.ProductDB{ProductID: uuid.New(), Name: "Hammer", Price: 10, StockQuantity: 20, CategoryID: category.CategoryID}
	}

	t.Run("get missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		id := uuid.New()
		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(nil, apperr.ErrNotFound)

		_, err := svc.Get(context.Background(), id)
		assert.ErrorIs(t, err, services.ErrProductNotFound)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		p := existing()
		m.reader.EXPECT().GetByID(gomock.Any(), p.ProductID).Return(p, nil)
		m.categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := svc.Update(context.Background(), p.ProductID, models.ProductInput{
			Name:          "Claw hammer",
			Price:         ptr(11.0),
			StockQuantity: ptr(15),
			CategoryID:    category.CategoryID.String(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Claw hammer", updated.Name)
		assert.Equal(t, 15, updated.StockQuantity)
	})

	t.Run("invalid update leaves product untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		p := existing()
		m.reader.EXPECT().GetByID(gomock.Any(), p.ProductID).Return(p, nil)
		m.categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Update(context.Background(), p.ProductID, models.ProductInput{
			Name:          "",
			Price:         ptr(11.0),
			StockQuantity: ptr(15),
			CategoryID:    category.CategoryID.String(),
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "Hammer", p.Name)
	})

	t.Run("delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		p := existing()
		m.reader.EXPECT().GetByID(gomock.Any(), p.ProductID).Return(p, nil)
		m.writer.EXPECT().Delete(gomock.Any(), p.ProductID).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), p.ProductID))
	})

	t.Run("delete missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, m := newProductService(ctrl)

		id := uuid.New()
		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(nil, apperr.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(context.Background(), id), services.ErrProductNotFound)
	})
}

func TestProductService_ListAndLowStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, m := newProductService(ctrl)

	products := []models.ProductDB{{Name: "Hammer"}, {Name: "Saw"}}
	categoryID := uuid.New()
	filter := models.ProductFilter{CategoryID: &categoryID}

	m.reader.EXPECT().List(gomock.Any(), filter).Return(products, nil)
	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, products, got)

	m.reader.EXPECT().ListLowStock(gomock.Any(), 5, models.ProductFilter{}).Return(products[:1], nil)
	got, err = svc.LowStock(context.Background(), models.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	m.reader.EXPECT().List(gomock.Any(), models.ProductFilter{}).Return(nil, errors.New("db error"))
	_, err = svc.List(context.Background(), models.ProductFilter{})
	assert.EqualError(t, err, "db error")
}

func TestParseProductFilter(t *testing.T) {
	f, err := services.ParseProductFilter("")
	require.NoError(t, err)
	assert.Nil(t, f.CategoryID)

	id := uuid.New()
	f, err = services.ParseProductFilter(id.String())
	require.NoError(t, err)
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, id, *f.CategoryID)

	_, err = services.ParseProductFilter("abc")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProductService_EventsWaitForCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	category := &models.CategoryDB{CategoryID: uuid.New(), Name: "Tools"}
	reader := services.NewMockProductReader(ctrl)
	writer := services.NewMockProductWriter(ctrl)
	categories := services.NewMockCategoryReader(ctrl)
	events := services.NewMockKafkaWriter(ctrl)

	var pending []func(context.Context)
	deferred := func(_ context.Context, fn func(context.Context)) { pending = append(pending, fn) }
	svc := services.NewProductService(reader, writer, categories, events, deferred, 5)

	categories.EXPECT().GetByID(gomock.Any(), category.CategoryID).Return(category, nil)
	writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Create(context.Background(), models.ProductInput{
		Name:          "Hammer",
		Price:         ptr(10.0),
		StockQuantity: ptr(2),
		CategoryID:    category.CategoryID.String(),
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	var published []kafka.Message
	events.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		published = append(published, msgs...)
		return nil
	}).Times(2)

	pending[0](context.Background())
	assert.Equal(t, []string{models.EventProductCreated, models.EventLowStock}, eventTypes(published))
}
