package chart

import (
	"errors"
	"fmt"
)

// InvalidInputError is returned when a ChartInput cannot be rendered.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid chart input: %s", e.Reason)
}

// SurfaceNotFoundError is returned by the host document when an element id
// does not resolve to exactly one drawable canvas.
type SurfaceNotFoundError struct {
	ElementID string
	Reason    string
}

func (e *SurfaceNotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("drawing surface %q not found", e.ElementID)
	}
	return fmt.Sprintf("drawing surface %q not found: %s", e.ElementID, e.Reason)
}

func IsInvalidInput(err error) bool {
	var e *InvalidInputError
	return errors.As(err, &e)
}

func IsSurfaceNotFound(err error) bool {
	var e *SurfaceNotFoundError
	return errors.As(err, &e)
}
