// Package tasks provides the ownership-scoped repository for to-do items.
// Every read and mutation is constrained to the owner passed in by the
// caller; a task belonging to someone else is indistinguishable from a task
// that does not exist.
package tasks

import (
	"context"

	"github.com/avorobyov/taskkeeper/internal/server/models"
)

// Sortable field names accepted by Filter.SortBy.
const (
	SortByDescription = "description"
	SortByCompleted   = "completed"
	SortByCreatedAt   = "createdAt"
	SortByUpdatedAt   = "updatedAt"
)

// Filter narrows and orders a List call. The zero value returns every task
// of the owner ordered by creation time ascending.
type Filter struct {
	// Completed, when non-nil, restricts the result to tasks with the
	// given completed flag.
	Completed *bool
	// SortBy is one of the SortBy* constants; empty means createdAt.
	SortBy string
	// Desc reverses the sort order.
	Desc bool
	// Limit bounds the page size; zero means no limit.
	Limit int
	// Offset skips the first N rows.
	Offset int
}

// Repository defines persistence operations for tasks. Every method takes
// the owner explicitly; implementations must never return or touch tasks of
// other owners, failing with common.ErrorNotFound instead.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Task, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*models.Task, error)

	// Update persists description and completed for the owner's task,
	// bumping updated_at.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)

	Delete(ctx context.Context, ownerID, id string) error

	// DeleteAllForOwner removes every task of ownerID (account deletion
	// cascade).
	DeleteAllForOwner(ctx context.Context, ownerID string) error
}
