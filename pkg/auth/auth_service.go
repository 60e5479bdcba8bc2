package auth

import (
	"Pasikuthu/domain"
	"Pasikuthu/internal/utils/mailing"
	"Pasikuthu/pkg/jwt"
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const magicLinkSubject = "Your Pasikuthu sign-in link"

type (
	AuthService interface {
		GetSession(ctx context.Context) (*domain.Session, error)
		OnAuthStateChange(callback domain.AuthStateCallback) domain.Subscription
		SignInWithOtp(ctx context.Context, email string) error
		VerifyOtp(ctx context.Context, token string) (*domain.Session, error)
		SignOut(ctx context.Context) error
	}

	Config struct {
		AppURL       string
		MagicLinkTTL time.Duration
		SessionTTL   time.Duration
	}

	authService struct {
		jwtService jwt.JWTService
		mailer     mailing.Mailer
		validator  *validator.Validate
		config     Config
		now        func() time.Time

		mu          sync.Mutex
		session     *domain.Session
		subscribers map[uint64]domain.AuthStateCallback
		nextSubID   uint64
	}

	subscription struct {
		once        sync.Once
		unsubscribe func()
	}
)

func NewAuthService(jwtService jwt.JWTService, mailer mailing.Mailer, validator *validator.Validate, config Config) AuthService {
	return &authService{
		jwtService:  jwtService,
		mailer:      mailer,
		validator:   validator,
		config:      config,
		now:         time.Now,
		subscribers: make(map[uint64]domain.AuthStateCallback),
	}
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.unsubscribe)
}

// GetSession returns the current session, or nil. An expired session is dropped
// and reported to subscribers as a sign-out.
func (s *authService) GetSession(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	current := s.session
	if current == nil || !current.Expired(s.now()) {
		s.mu.Unlock()
		return current, nil
	}
	s.session = nil
	s.mu.Unlock()

	log.Infow("session expired", "user_id", current.UserID)
	s.emit(domain.AuthEventSignedOut, nil)
	return nil, nil
}

func (s *authService) OnAuthStateChange(callback domain.AuthStateCallback) domain.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers[id] = callback

	return &subscription{unsubscribe: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}}
}

// SignInWithOtp mails a single-use magic link to email.
func (s *authService) SignInWithOtp(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := s.validator.Var(email, "required,email"); err != nil {
		return domain.NewValidationError("email", domain.ErrInvalidEmail.Error())
	}

	token, err := s.jwtService.GenerateMagicLinkToken(strings.ToLower(email), s.config.MagicLinkTTL)
	if err != nil {
		return &domain.UnexpectedError{Op: "sign in", Cause: err}
	}

	link := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", strings.TrimRight(s.config.AppURL, "/"), url.QueryEscape(token))
	body := fmt.Sprintf(
		`<p>Follow this link to sign in and start logging donations:</p><p><a href="%s">Sign in</a></p><p>The link expires in %s.</p>`,
		html.EscapeString(link), s.config.MagicLinkTTL,
	)

	if err := s.mailer.SendMail(email, magicLinkSubject, body); err != nil {
		log.Errorw("failed to send magic link", "email", email, "error", err)
		return &domain.RemoteError{Op: "send magic link", Err: err}
	}

	log.Infow("magic link sent", "email", email)
	return nil
}

// VerifyOtp exchanges a magic-link token for a session and notifies subscribers.
func (s *authService) VerifyOtp(ctx context.Context, token string) (*domain.Session, error) {
	email, err := s.jwtService.ValidateMagicLinkToken(token)
	if err != nil {
		return nil, err
	}

	userID := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
	accessToken, expiresAt, err := s.jwtService.GenerateSessionToken(userID, email, s.config.SessionTTL)
	if err != nil {
		return nil, &domain.UnexpectedError{Op: "verify magic link", Cause: err}
	}

	session := &domain.Session{
		AccessToken: accessToken,
		UserID:      userID,
		Email:       email,
		ExpiresAt:   expiresAt,
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	log.Infow("signed in", "user_id", userID)
	s.emit(domain.AuthEventSignedIn, session)
	return session, nil
}

func (s *authService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	previous := s.session
	s.session = nil
	s.mu.Unlock()

	if previous != nil {
		log.Infow("signed out", "user_id", previous.UserID)
	}
	s.emit(domain.AuthEventSignedOut, nil)
	return nil
}

// emit calls subscribers outside the lock so they may call back into the service.
func (s *authService) emit(event domain.AuthEvent, session *domain.Session) {
	s.mu.Lock()
	callbacks := make([]domain.AuthStateCallback, 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(event, session)
	}
}
