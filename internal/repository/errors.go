package repository

import "errors"

var (
	// ErrNotFound is returned when a queried entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert or update hits a unique
	// constraint (email, tax id, category name, (posting, profile) pair).
	ErrDuplicate = errors.New("duplicate")
)
