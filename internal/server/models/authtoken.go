package models

import "time"

// AuthToken is one currently-valid bearer credential of a user. A user may
// hold many rows at once (one per session); the token value itself is
// globally unique across all users.
type AuthToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
