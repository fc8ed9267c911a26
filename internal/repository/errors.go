package repository

import "errors"

// Store-level failures that adapters classify from their driver errors.
// The usecase layer turns them into domain conflicts with a readable message.
var (
	// ErrDuplicate indicates that an insert or update hit a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate key")

	// ErrReferenced indicates that a delete or insert violated a foreign key,
	// e.g. removing a language that content still points at.
	ErrReferenced = errors.New("foreign key violation")
)
