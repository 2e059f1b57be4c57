package errors

import "errors"

var (
	ErrNotFound         = errors.New("venue not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidID        = errors.New("invalid venue ID format")
	ErrTypeMismatch     = errors.New("resource kind does not match venue type")
)
