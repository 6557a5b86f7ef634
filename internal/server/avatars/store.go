// Package avatars handles profile-image blobs: a normalization gate applied
// before anything is stored, and pluggable storage backends (a users-table
// blob column, or S3-compatible object storage).
package avatars

import "context"

// Store persists one avatar blob per user.
type Store interface {
	// Put replaces the user's avatar with data (already normalized).
	Put(ctx context.Context, userID string, data []byte) error

	// Get returns the stored blob, or common.ErrorNotFound when the user
	// has no avatar.
	Get(ctx context.Context, userID string) ([]byte, error)

	// Delete removes the user's avatar. Absent avatars are not an error.
	Delete(ctx context.Context, userID string) error
}
