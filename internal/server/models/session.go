package models

import (
	"slices"
	"time"
)

// Session is a bookable event. Users holds the ids of registered accounts;
// it is a set, insertion order carries no meaning.
type Session struct {
	ID          int64
	Name        string
	Date        time.Time
	Description string
	TeacherID   *int64
	Users       []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasUser reports whether userID is registered to the session.
func (s *Session) HasUser(userID int64) bool {
	return slices.Contains(s.Users, userID)
}

// AddUser registers userID. The caller must have checked membership first.
func (s *Session) AddUser(userID int64) {
	s.Users = append(s.Users, userID)
}

// RemoveUser withdraws userID, preserving the rest of the set.
func (s *Session) RemoveUser(userID int64) {
	s.Users = slices.DeleteFunc(s.Users, func(id int64) bool { return id == userID })
}
