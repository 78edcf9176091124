package service

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials deliberately does not say which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotOwner           = errors.New("not the owner of this recipe")
)
