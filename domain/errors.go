package domain

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any remote call is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RemoteError wraps an error returned by the remote store or auth collaborator.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("Failed to %s: %s", e.Op, e.Err.Error())
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// UnexpectedError covers transport failures and recovered panics. Its message is
// always the generic one; the cause is kept for logging.
type UnexpectedError struct {
	Op    string
	Cause error
}

func (e *UnexpectedError) Error() string {
	return MessageUnexpected
}

func (e *UnexpectedError) Unwrap() error {
	return e.Cause
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

func IsUnexpectedError(err error) bool {
	var ue *UnexpectedError
	return errors.As(err, &ue)
}
