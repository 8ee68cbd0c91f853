package service

import "errors"

var (
	// ErrDuplicateName is returned when a create collides with an existing
	// record of the same name (case-insensitively) inside the group.
	ErrDuplicateName = errors.New("a record with that name already exists")

	// ErrNoGroup is returned when an operation needs a tenant but the user
	// has not joined a group yet.
	ErrNoGroup = errors.New("user does not belong to a group")

	// ErrReservedRecipe is returned when a caller tries to delete the
	// group's auto-shopping checklist.
	ErrReservedRecipe = errors.New("the checklist recipe cannot be deleted")

	// ErrNotFound is returned on direct single-entity lookups that miss.
	ErrNotFound = errors.New("record not found")
)
