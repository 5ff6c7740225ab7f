package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

type CategoryReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCategoryReadRepository(db *sqlx.DB, txGetter TxGetter) *CategoryReadRepository {
	return &CategoryReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns apperr.ErrNotFound when the category does not exist.
func (r *CategoryReadRepository) GetByID(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error) {
	const query = `
		SELECT category_id, name, description, created_at
		FROM categories
		WHERE category_id = $1
	`

	var category models.CategoryDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &category, query, categoryID)
	logQuery(query, []any{categoryID}, category, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns all categories ordered by name.
func (r *CategoryReadRepository) List(ctx context.Context) ([]models.CategoryDB, error) {
	const query = `
		SELECT category_id, name, description, created_at
		FROM categories
		ORDER BY name, category_id
	`

	categories := []models.CategoryDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &categories, query)
	logQuery(query, nil, len(categories), err)

	if err != nil {
		return nil, err
	}
	return categories, nil
}

type CategoryWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCategoryWriteRepository(db *sqlx.DB, txGetter TxGetter) *CategoryWriteRepository {
	return &CategoryWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the category and fills CategoryID and CreatedAt.
func (r *CategoryWriteRepository) Create(ctx context.Context, category *models.CategoryDB) error {
	const query = `
		INSERT INTO categories (name, description, created_at)
		VALUES ($1, $2, NOW())
		RETURNING category_id, created_at
	`
	args := []any{category.Name, category.Description}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&category.CategoryID, &category.CreatedAt)
	logQuery(query, args, category.CategoryID, err)

	return err
}
