// Package apperr defines sentinel errors shared across service boundaries.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidTarget marks a link suggestion whose target note does not
	// exist in the vault.
	ErrInvalidTarget = errors.New("invalid link target")
	// ErrNoInsertionPoint means no known section heading was found and the
	// inserter was not allowed to create one.
	ErrNoInsertionPoint = errors.New("no insertion point")
)
