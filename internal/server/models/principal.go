package models

// Principal is the identity resolved for one in-flight request. It is derived
// from a validated token on every call and never persisted.
type Principal struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

// PrincipalFromUser builds the request identity from a stored account.
func PrincipalFromUser(u *User) *Principal {
	return &Principal{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Admin:     u.Admin,
	}
}
