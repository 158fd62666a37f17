// Package common defines the sentinel errors shared by the storage and
// service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrValidation indicates a missing or empty required field.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates a duplicate unique key (email).
	ErrConflict = errors.New("already exists")

	// ErrNotFound indicates no matching record. A record owned by another
	// user reports the same error as a nonexistent one.
	ErrNotFound = errors.New("not found")

	// ErrAuthentication indicates a bad password or an unresolved token.
	ErrAuthentication = errors.New("unauthorized")

	// ErrStorage indicates an I/O or parse failure on a backing collection.
	ErrStorage = errors.New("storage error")
)
