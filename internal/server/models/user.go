// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account identity. Email is unique (stored lowercased) and
// SecretHash holds the argon2id hash of the account password; the plaintext
// is never persisted. Avatar is an optional normalized image blob whose
// storage backend is configurable.
type User struct {
	ID         string
	Email      string
	Name       string
	SecretHash string
	Avatar     []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
