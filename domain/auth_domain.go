package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSendOtp    = "Check your email for the magic link to finish signing in."
	MessageSuccessVerifyOtp  = "signed in successfully"
	MessageSuccessSignOut    = "signed out successfully"
	MessageSuccessGetSession = "session retrieved successfully"

	MessageFailedSendOtp   = "failed to send magic link"
	MessageFailedVerifyOtp = "failed to verify magic link"
	MessageFailedSignOut   = "failed to sign out"

	ErrInvalidEmail = errors.New("a valid email address is required")
)

type AuthEvent string

const (
	AuthEventSignedIn  AuthEvent = "SIGNED_IN"
	AuthEventSignedOut AuthEvent = "SIGNED_OUT"
)

type (
	Session struct {
		AccessToken string    `json:"access_token"`
		UserID      string    `json:"user_id"`
		Email       string    `json:"email"`
		ExpiresAt   time.Time `json:"expires_at"`
	}

	SendOtpRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	// Subscription is returned by OnAuthStateChange. Unsubscribe is safe to call more than once.
	Subscription interface {
		Unsubscribe()
	}

	AuthStateCallback func(event AuthEvent, session *Session)
)

func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
