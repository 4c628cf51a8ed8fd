package model

import "errors"

// Error kinds reported by layout operations. Callers match them with
// errors.Is; operations wrap them with detail.
var (
	// ErrValidation is returned when an input record is rejected before any
	// state changes.
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded is returned when a type has no boxes left to place.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrPlacementBlocked is returned when a new box would overlap a placed one.
	ErrPlacementBlocked = errors.New("placement blocked")

	// ErrCollisionBlocked is returned when moving or rotating a box would
	// overlap another one.
	ErrCollisionBlocked = errors.New("collision blocked")

	// ErrOutOfBounds is returned when a box would leave the container.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrNotFound is returned for unknown type or instance ids.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a rejected field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
