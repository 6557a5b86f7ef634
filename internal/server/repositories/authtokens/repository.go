// Package authtokens declares the server-side repository contract for the
// per-user set of currently-valid bearer tokens.
package authtokens

import (
	"context"

	"github.com/avorobyov/taskkeeper/internal/server/models"
)

// Repository defines operations for issuing, resolving, and revoking
// bearer tokens.
type Repository interface {
	// Create stores a newly issued token for userID. Issuance is additive:
	// a user may hold many valid tokens at once.
	Create(ctx context.Context, userID string, token string) error

	// Find looks up a token by its exact string and returns its metadata,
	// or common.ErrorNotFound when the token is absent (never issued or
	// since revoked).
	Find(ctx context.Context, token string) (*models.AuthToken, error)

	// Delete revokes a single token. Deleting a non-existent token is not
	// an error.
	Delete(ctx context.Context, token string) error

	// DeleteAllForUser revokes every token held by userID.
	DeleteAllForUser(ctx context.Context, userID string) error
}
