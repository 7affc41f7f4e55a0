package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrForeignKeyViolation is returned when a child row references a missing parent
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
