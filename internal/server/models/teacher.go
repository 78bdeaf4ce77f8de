package models

import "time"

// Teacher is referenced by sessions by id only; deleting a teacher does not
// cascade into sessions.
type Teacher struct {
	ID        int64
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
