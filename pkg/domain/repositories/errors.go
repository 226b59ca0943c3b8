package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup by identity has no match
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an identity is already taken
	ErrAlreadyExists = errors.New("already exists")
)
