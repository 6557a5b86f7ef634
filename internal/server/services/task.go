package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avorobyov/taskkeeper/internal/common"
	"github.com/avorobyov/taskkeeper/internal/server/models"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/repomanager"
	"github.com/avorobyov/taskkeeper/internal/server/repositories/tasks"
)

// TaskPatch carries the updatable task fields. Nil means "leave as is".
type TaskPatch struct {
	Description *string
	Completed   *bool
}

// TaskService implements the ownership-scoped task operations. Every method
// takes the authenticated owner explicitly; nothing is ever read from a
// request-supplied owner field.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create persists a new task owned by owner. The owner comes from the
// authenticated identity regardless of anything present in the request body.
func (s *TaskService) Create(ctx context.Context, owner *models.User, description string, completed bool) (*models.Task, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", common.ErrorValidation)
	}

	task := &models.Task{UserID: owner.ID, Description: description, Completed: completed}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// List returns the owner's tasks narrowed by filter. No matches is an empty
// slice, not an error.
func (s *TaskService) List(ctx context.Context, owner *models.User, filter tasks.Filter) ([]*models.Task, error) {
	result, err := s.repomanager.Tasks(s.db).List(ctx, owner.ID, filter)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return result, nil
}

// Get returns the owner's task by ID. A task owned by someone else reads as
// common.ErrorNotFound, same as a task that does not exist.
func (s *TaskService) Get(ctx context.Context, owner *models.User, id string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, owner.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}
	return task, nil
}

// Update applies the patch to the owner's task. Not-owned and absent
// collapse to common.ErrorNotFound before anything is written.
func (s *TaskService) Update(ctx context.Context, owner *models.User, id string, patch TaskPatch) (*models.Task, error) {
	if patch.Description != nil && *patch.Description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", common.ErrorValidation)
	}

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, owner.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}

	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}

	updated, err := repo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return updated, nil
}

// Delete removes the owner's task permanently.
func (s *TaskService) Delete(ctx context.Context, owner *models.User, id string) error {
	if err := s.repomanager.Tasks(s.db).Delete(ctx, owner.ID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}
