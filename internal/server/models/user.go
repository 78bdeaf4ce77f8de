// Package models contains the persistent entities of the booking backend
// plus the per-request Principal derived from a validated token.
package models

import "time"

// User is a registered account. Email is the unique login identifier;
// Password holds the one-way hash, never the clear text.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Password  string
	Admin     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
