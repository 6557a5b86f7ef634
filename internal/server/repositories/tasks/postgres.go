package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avorobyov/taskkeeper/internal/common"
	"github.com/avorobyov/taskkeeper/internal/dbx"
	"github.com/avorobyov/taskkeeper/internal/server/models"
)

// sortColumns whitelists the sortable fields and maps them onto columns.
// Anything else never reaches the query text.
var sortColumns = map[string]string{
	SortByDescription: "description",
	SortByCompleted:   "completed",
	SortByCreatedAt:   "created_at",
	SortByUpdatedAt:   "updated_at",
}

// PostgresRepository implements task storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (user_id, description, completed)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Description, task.Completed).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Task, error) {
	query :=
		`SELECT id, user_id, description, completed, created_at, updated_at FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&task.ID, &task.UserID, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// absent and not-owned collapse to the same error
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string, filter Filter) ([]*models.Task, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, user_id, description, completed, created_at, updated_at FROM tasks WHERE user_id = $1`)

	args := []any{ownerID}

	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		fmt.Fprintf(&sb, " AND completed = $%d", len(args))
	}

	column, ok := sortColumns[filter.SortBy]
	if filter.SortBy == "" {
		column = "created_at"
	} else if !ok {
		return nil, fmt.Errorf("%w: unsupported sort field %q", common.ErrorValidation, filter.SortBy)
	}
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s", column, direction)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []*models.Task{}
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Description, &item.Completed, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks SET description = $1, completed = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.Description, task.Completed, task.ID, task.UserID).Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAllForOwner(ctx context.Context, ownerID string) error {
	query :=
		`DELETE FROM tasks
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
