package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrMissingConfig indicates that a required configuration value is absent.
	// This is fatal and aborts the run before any fetch begins.
	ErrMissingConfig = errors.New("required configuration missing")

	// ErrInvalidSectionPlan indicates that the configured section plan failed validation.
	ErrInvalidSectionPlan = errors.New("invalid section plan")

	// ErrDeliveryFailed indicates that handing the rendered digest to the
	// delivery channel failed. Unlike source failures this is fatal: an
	// undelivered digest has no value.
	ErrDeliveryFailed = errors.New("digest delivery failed")
)

// ValidationError reports which section plan field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
