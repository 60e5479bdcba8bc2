package domain

import (
	"errors"
	"time"
)

const (
	// NoticeTTL is how long a transient user-visible error stays visible.
	NoticeTTL = 5 * time.Second
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageSessionRequired      = "sign in to continue"
	MessageUnexpected           = "An unexpected error occurred. Please try again."

	ErrNoSession        = errors.New("no active session")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrMutationInFlight = errors.New("another change to this donation is still in progress")
)
