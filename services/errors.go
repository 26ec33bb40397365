package services

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraintViolation rejects an operation that would break the anchor invariant.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInsufficientData rejects route optimization without enough geolocated places.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrValidation rejects a malformed or incomplete state payload.
	ErrValidation = errors.New("validation error")
	// ErrCodec marks a share link that could not be decoded.
	ErrCodec = errors.New("codec error")
	// ErrNotFound marks an unknown plan, day item or stored record.
	ErrNotFound = errors.New("not found")
)

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstraintViolation, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
