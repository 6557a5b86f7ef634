package authtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avorobyov/taskkeeper/internal/common"
	"github.com/avorobyov/taskkeeper/internal/dbx"
	"github.com/avorobyov/taskkeeper/internal/server/models"
)

// PostgresRepository implements token storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new token row for userID. The UNIQUE index on token
// guarantees a given token value belongs to at most one user.
func (r *PostgresRepository) Create(ctx context.Context, userID string, token string) error {
	query := `
		INSERT INTO auth_tokens (user_id, token)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the token row for the given token string.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.AuthToken, error) {
	query := `
		SELECT id, user_id, created_at
		FROM auth_tokens
		WHERE token = $1
	`
	authToken := &models.AuthToken{Token: token}
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&authToken.ID, &authToken.UserID, &authToken.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return authToken, nil
}

// Delete removes a token by its token string.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM auth_tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every token held by userID.
func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM auth_tokens
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
