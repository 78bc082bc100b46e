package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrNotFound record not found
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput invalid input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnauthenticated caller is not authenticated
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInternal internal error
	ErrInternal = errors.New("internal error")

	// ErrAlreadyCancelled subscription is already cancelled
	ErrAlreadyCancelled = errors.New("subscription already cancelled")

	// ErrPaymentRejected payment was rejected by the provider
	ErrPaymentRejected = errors.New("payment rejected")
)

// ExternalServiceError carries a provider failure through to the HTTP layer
// so the original status code and raw body can be passed to the caller.
type ExternalServiceError struct {
	Service     string
	StatusCode  int
	Body        string
	OriginalErr error
}

// Error implements the error interface
func (e *ExternalServiceError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s service error (status %d): %v", e.Service, e.StatusCode, e.OriginalErr)
	}
	return fmt.Sprintf("%s service error (status %d): %s", e.Service, e.StatusCode, e.Body)
}

// Unwrap returns the original error
func (e *ExternalServiceError) Unwrap() error {
	return e.OriginalErr
}

// NewExternalServiceError creates a new external service error
func NewExternalServiceError(service string, statusCode int, body string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		Service:     service,
		StatusCode:  statusCode,
		Body:        body,
		OriginalErr: err,
	}
}

// PaymentRejectedError is returned when the card provider answers with a
// terminal status other than approved or pending.
type PaymentRejectedError struct {
	Status       string
	StatusDetail string
}

// Error implements the error interface
func (e *PaymentRejectedError) Error() string {
	return fmt.Sprintf("payment rejected [%s]: %s", e.Status, e.StatusDetail)
}

// Is reports whether this error matches ErrPaymentRejected
func (e *PaymentRejectedError) Is(target error) bool {
	return target == ErrPaymentRejected
}
