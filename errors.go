package hyperslab

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the sentinel every *ValidationError unwraps to
	ErrValidation = errors.New("invalid selection")
	// ErrUnsupportedSelection is the sentinel every *UnsupportedSelectionError
	// unwraps to
	ErrUnsupportedSelection = errors.New("unsupported selection")
)

// ValidationError reports a selection that cannot be resolved against a
// shape, or a selector that was built from invalid input. Axis is -1 when the
// failure is not scoped to a single axis.
type ValidationError struct {
	// Op names the operation that failed, eg. "Hyperslab.IntoRaw"
	Op string
	// Axis is the offending axis, or -1
	Axis int
	// Field is the selector component that was rejected: "index", "start",
	// "end", "step", "block", "count", "ndim" or "unlimited"
	Field string
	// Value is the offending value
	Value int
	// Limit is the bound Value violated
	Limit int
	// Reason is a human readable description
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Unwrap makes errors.Is(err, ErrValidation) hold
func (e *ValidationError) Unwrap() error { return ErrValidation }

// UnsupportedSelectionError is returned when a raw selection has no cooked
// equivalent, or a region handle refuses a selection kind outright.
type UnsupportedSelectionError struct {
	Op     string
	Reason string
}

func (e *UnsupportedSelectionError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Unwrap makes errors.Is(err, ErrUnsupportedSelection) hold
func (e *UnsupportedSelectionError) Unwrap() error { return ErrUnsupportedSelection }

func outOfBounds(op, field string, axis, value, dim int) *ValidationError {
	return &ValidationError{
		Op:     op,
		Axis:   axis,
		Field:  field,
		Value:  value,
		Limit:  dim,
		Reason: fmt.Sprintf("%s %d out of bounds for axis %d with size %d", field, value, axis, dim),
	}
}

func ndimMismatch(op string, got, want int) *ValidationError {
	return &ValidationError{
		Op:     op,
		Axis:   -1,
		Field:  "ndim",
		Value:  got,
		Limit:  want,
		Reason: fmt.Sprintf("selection ndim (%d) != shape ndim (%d)", got, want),
	}
}

func invalidAxis(op, field string, axis, value, limit int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Op:     op,
		Axis:   axis,
		Field:  field,
		Value:  value,
		Limit:  limit,
		Reason: fmt.Sprintf(format, args...),
	}
}
