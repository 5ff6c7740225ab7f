package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory/internal/apperr"
	"github.com/sbilibin2017/gw-inventory/internal/models"
)

const userColumns = `user_id, username, email, password_hash, telephone, address, created_at, updated_at`

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByUsername returns apperr.ErrNotFound when no user has that username.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, query, username)
}

// GetByID returns apperr.ErrNotFound when the id is unknown.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.getOne(ctx, query, userID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)

	// the row carries the password hash, so only the id is logged
	logQuery(query, []any{arg}, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the user and fills UserID and timestamps.
// A taken username yields an error wrapping apperr.ErrConflict.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) error {
	query := `
		INSERT INTO users (username, email, password_hash, telephone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING user_id, created_at, updated_at
	`
	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Telephone, user.Address)
	err := row.Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt)

	logQuery(query, []any{user.Username, user.Email, "<redacted>", user.Telephone, user.Address}, user.UserID, err)

	if code, ok := pgErrorCode(err); ok && code == pgUniqueViolation {
		return fmt.Errorf("%w: username %q already exists", apperr.ErrConflict, user.Username)
	}
	return err
}
