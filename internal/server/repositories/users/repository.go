// Package users declares the server-side repository contract for account
// identities.
package users

import (
	"context"

	"github.com/avorobyov/taskkeeper/internal/server/models"
)

// Repository defines persistence operations for users. Implementations
// return common.ErrorNotFound for absent rows and common.ErrorConflict for
// duplicate emails.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Update persists name, email, and secret hash, bumping updated_at.
	Update(ctx context.Context, user *models.User) (*models.User, error)

	Delete(ctx context.Context, id string) error

	// SetAvatar replaces the stored avatar blob; nil clears it.
	SetAvatar(ctx context.Context, id string, avatar []byte) error

	// GetAvatar returns the stored blob, or common.ErrorNotFound when the
	// user is absent or has no avatar.
	GetAvatar(ctx context.Context, id string) ([]byte, error)
}
