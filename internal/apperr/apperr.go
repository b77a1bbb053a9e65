package apperr

import (
	"errors"
	"fmt"
)

// Base error kinds. Every business error in the services wraps exactly one of
// these, so callers can classify with errors.Is without knowing the subtype.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Named business-rule violations. All wrap ErrInvalidOperation.
var (
	ErrInsufficientStock       = fmt.Errorf("%w: insufficient stock", ErrInvalidOperation)
	ErrCapacityExceeded        = fmt.Errorf("%w: guest count exceeds capacity", ErrInvalidOperation)
	ErrInvalidStatusTransition = fmt.Errorf("%w: status transition not allowed", ErrInvalidOperation)
	ErrTableUnavailable        = fmt.Errorf("%w: table is not available for the requested time", ErrInvalidOperation)
	ErrCrossRestaurantTransfer = fmt.Errorf("%w: items belong to different restaurants", ErrInvalidOperation)
)

// NotFound returns an ErrNotFound annotated with the entity name.
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// Conflict returns an ErrConflict annotated with the duplicated field.
func Conflict(detail string) error {
	return fmt.Errorf("%w: %s", ErrConflict, detail)
}

// StatusCode maps an error to the HTTP status the API layer should return.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrInvalidOperation):
		return 422
	default:
		return 500
	}
}
