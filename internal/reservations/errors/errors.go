package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrTimeConflict = errors.New("reservation interval conflicts with an existing reservation")

	ErrCodeCollision = errors.New("confirmation code already in use")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
