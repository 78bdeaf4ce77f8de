// Package common holds the sentinel errors shared by repositories, services,
// and the HTTP layer. Repositories translate driver errors into these
// sentinels, services wrap them with context, and the HTTP layer maps them
// to status codes with errors.Is.
package common

import "errors"

var (

	// repository specific errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrBadRequest           = errors.New("bad request")
	ErrAuthenticationFailed = errors.New("bad credentials")
	ErrAuthorizationFailed  = errors.New("operation not permitted")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrInternal             = errors.New("internal error")
)
