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

const productSelect = `
	SELECT p.product_id, p.name, p.description, p.price, p.stock_quantity,
	       p.category_id, c.name AS category_name, p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.category_id = p.category_id
`

type ProductReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewProductReadRepository(db *sqlx.DB, txGetter TxGetter) *ProductReadRepository {
	return &ProductReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns apperr.ErrNotFound when the product does not exist.
func (r *ProductReadRepository) GetByID(ctx context.Context, productID uuid.UUID) (*models.ProductDB, error) {
	query := productSelect + ` WHERE p.product_id = $1`

	var product models.ProductDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &product, query, productID)
	logQuery(query, []any{productID}, product.ProductID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products ordered by category name, then product name.
func (r *ProductReadRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error) {
	query := productSelect + `
		WHERE ($1::UUID IS NULL OR p.category_id = $1)
		ORDER BY c.name, p.name, p.product_id
	`
	return r.selectProducts(ctx, query, filter.CategoryID)
}

// ListLowStock returns products whose stock is at or below threshold, lowest stock first.
func (r *ProductReadRepository) ListLowStock(ctx context.Context, threshold int, filter models.ProductFilter) ([]models.ProductDB, error) {
	query := productSelect + `
		WHERE p.stock_quantity <= $1
		  AND ($2::UUID IS NULL OR p.category_id = $2)
		ORDER BY p.stock_quantity, p.name, p.product_id
	`
	return r.selectProducts(ctx, query, threshold, filter.CategoryID)
}

// Stats counts products, categories and low-stock products in one round trip.
func (r *ProductReadRepository) Stats(ctx context.Context, threshold int) (*models.InventoryStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM products) AS total_products,
			(SELECT COUNT(*) FROM categories) AS total_categories,
			(SELECT COUNT(*) FROM products WHERE stock_quantity <= $1) AS low_stock
	`

	var stats models.InventoryStats
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &stats, query, threshold)
	logQuery(query, []any{threshold}, stats, err)

	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ProductReadRepository) selectProducts(ctx context.Context, query string, args ...any) ([]models.ProductDB, error) {
	products := []models.ProductDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &products, query, args...)
	logQuery(query, args, len(products), err)

	if err != nil {
		return nil, err
	}
	return products, nil
}

type ProductWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewProductWriteRepository(db *sqlx.DB, txGetter TxGetter) *ProductWriteRepository {
	return &ProductWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the product and fills ProductID and timestamps.
func (r *ProductWriteRepository) Create(ctx context.Context, product *models.ProductDB) error {
	const query = `
		INSERT INTO products (name, description, price, stock_quantity, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING product_id, created_at, updated_at
	`
	args := []any{product.Name, product.Description, product.Price, product.StockQuantity, product.CategoryID}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&product.ProductID, &product.CreatedAt, &product.UpdatedAt)
	logQuery(query, args, product.ProductID, err)

	return mapProductWriteError(err)
}

// Update overwrites every mutable column of the product.
func (r *ProductWriteRepository) Update(ctx context.Context, product *models.ProductDB) error {
	const query = `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock_quantity = $5, category_id = $6, updated_at = NOW()
		WHERE product_id = $1
		RETURNING updated_at
	`
	args := []any{product.ProductID, product.Name, product.Description, product.Price, product.StockQuantity, product.CategoryID}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&product.UpdatedAt)
	logQuery(query, args, product.UpdatedAt, err)

	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return mapProductWriteError(err)
}

// Delete removes the product. Deleting an unknown id returns apperr.ErrNotFound.
func (r *ProductWriteRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	const query = `DELETE FROM products WHERE product_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, productID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{productID}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// mapProductWriteError reports a dangling category reference as a validation
// error on category_id.
func mapProductWriteError(err error) error {
	if code, ok := pgErrorCode(err); ok && code == pgForeignKeyViolation {
		return apperr.FieldError("category_id", "select a valid category")
	}
	return err
}
