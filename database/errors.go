package database

import "errors"

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
