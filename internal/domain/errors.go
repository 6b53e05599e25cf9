package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNotFinite matches any ValidationError raised for NaN or infinite input.
	ErrNotFinite = errors.New("must be a finite number")

	// ErrNotPositive matches any ValidationError raised for a value at or below zero.
	ErrNotPositive = errors.New("must be a positive number")

	// ErrOutOfRange matches any ValidationError raised for coordinates off the globe.
	ErrOutOfRange = errors.New("out of range")

	// ErrUnknownKind indicates a workout kind other than running or cycling.
	ErrUnknownKind = errors.New("unknown workout kind")
)

// ValidationError describes the first input field that failed validation.
type ValidationError struct {
	Reason ValidationReason
	Field  string
	Value  float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s (got %s)", e.Field, e.sentinel().Error(), strconv.FormatFloat(e.Value, 'g', -1, 64))
}

// Is lets errors.Is match a ValidationError against its reason sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ValidationError) sentinel() error {
	switch e.Reason {
	case ReasonNotFinite:
		return ErrNotFinite
	case ReasonNotPositive:
		return ErrNotPositive
	case ReasonOutOfRange:
		return ErrOutOfRange
	default:
		return errors.New(string(e.Reason))
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UnknownKindError carries the rejected kind string.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("%s %q (use running or cycling)", ErrUnknownKind.Error(), e.Kind)
}

func (e *UnknownKindError) Unwrap() error { return ErrUnknownKind }
