package domain

import (
	"errors"
	"fmt"
)

// Error families. Transport maps each family to a status code; specific errors
// below wrap exactly one family so errors.Is works on both levels.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPrecondition = errors.New("precondition failed")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFound family.
var (
	ErrVenueNotFound      = fmt.Errorf("venue %w", ErrNotFound)
	ErrConventionNotFound = fmt.Errorf("convention %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrTalkNotFound       = fmt.Errorf("talk %w", ErrNotFound)
)

// Conflict family.
var (
	// ErrAlreadyJoined covers duplicate registrations and speaker/guest role collisions.
	ErrAlreadyJoined = fmt.Errorf("already joined: %w", ErrConflict)
	// ErrIdentityAlreadyExists is returned when a user is created under an identity that is taken.
	ErrIdentityAlreadyExists = fmt.Errorf("identity already exists: %w", ErrConflict)
	// ErrStillReferenced is returned when the storage engine refuses a delete because other rows point at the target.
	ErrStillReferenced = fmt.Errorf("still referenced: %w", ErrConflict)
)

// Precondition family.
var (
	// ErrNotPartOfConvention is returned when a speaker or guest has not joined the talk's convention.
	ErrNotPartOfConvention = fmt.Errorf("not part of convention: %w", ErrPrecondition)
)
