package utils

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("no authenticated principal")
	ErrPlanNotFound       = errors.New("trip plan not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrProviderDisabled   = errors.New("provider not configured")
)

// InsufficientCreditsError carries the numbers needed for a purchase prompt.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("You need %d credits but only have %d", e.Required, e.Available)
}

type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}

type AIServiceError struct {
	Message string
	Cause   error
}

func (e *AIServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AIServiceError) Unwrap() error { return e.Cause }

type DatabaseError struct {
	Message string
	Cause   error
}

func (e *DatabaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DatabaseError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrDatabaseError
}

// PlanError is the only error the generation pipeline hands back to its caller.
// Message is safe to show to the user; Cause stays in the logs.
type PlanError struct {
	Message string
	Cause   error
}

func (e *PlanError) Error() string { return e.Message }

func (e *PlanError) Unwrap() error { return e.Cause }
