package domain

import "errors"

// Domain errors
var (
	ErrUnknownFeature     = errors.New("unknown feature")
	ErrRunAlreadyStarted  = errors.New("run already started; create a new supervisor")
	ErrNoInput            = errors.New("no input provided")
	ErrUnsupportedFeature = errors.New("feature not supported by this backend")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
