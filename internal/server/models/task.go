package models

import "time"

// Task is a to-do item. UserID references the owning user, is set once at
// creation from the authenticated identity and never changes afterwards.
type Task struct {
	ID          string
	UserID      string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
