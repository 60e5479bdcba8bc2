package session

import (
	"Pasikuthu/domain"
	"context"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

type (
	AuthClient interface {
		GetSession(ctx context.Context) (*domain.Session, error)
		OnAuthStateChange(callback domain.AuthStateCallback) domain.Subscription
	}

	Reloader interface {
		Reload(ctx context.Context, session *domain.Session) error
	}

	// Lifecycle keeps the donation collection in step with the auth state: the
	// collection is reloaded on start and on every sign-in or sign-out.
	Lifecycle struct {
		auth     AuthClient
		reloader Reloader

		mu           sync.RWMutex
		session      *domain.Session
		subscription domain.Subscription
		closeOnce    sync.Once
	}
)

func NewLifecycle(auth AuthClient, reloader Reloader) *Lifecycle {
	return &Lifecycle{
		auth:     auth,
		reloader: reloader,
	}
}

// Start reads the current session, loads the collection for it and subscribes
// to later auth changes. Load failures are logged and kept by the reloader.
func (l *Lifecycle) Start(ctx context.Context) error {
	current, err := l.auth.GetSession(ctx)
	if err != nil {
		return &domain.RemoteError{Op: "get session", Err: err}
	}

	l.setSession(current)
	l.reload(ctx, "initial", current)

	sub := l.auth.OnAuthStateChange(func(event domain.AuthEvent, session *domain.Session) {
		l.setSession(session)
		l.reload(context.Background(), string(event), session)
	})

	l.mu.Lock()
	l.subscription = sub
	l.mu.Unlock()
	return nil
}

func (l *Lifecycle) Session() *domain.Session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.session
}

// CurrentSession asks the auth client for the session first, so an expired one
// is signed out (and the collection cleared) before the lifecycle's copy is read.
func (l *Lifecycle) CurrentSession(ctx context.Context) (*domain.Session, error) {
	current, err := l.auth.GetSession(ctx)
	if err != nil {
		return nil, &domain.RemoteError{Op: "get session", Err: err}
	}
	if current == nil {
		return nil, nil
	}
	return l.Session(), nil
}

// Close ends the auth subscription. Later calls do nothing.
func (l *Lifecycle) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		sub := l.subscription
		l.subscription = nil
		l.mu.Unlock()

		if sub != nil {
			sub.Unsubscribe()
		}
	})
}

func (l *Lifecycle) setSession(session *domain.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session = session
}

func (l *Lifecycle) reload(ctx context.Context, reason string, session *domain.Session) {
	if err := l.reloader.Reload(ctx, session); err != nil {
		log.Errorw("failed to reload donations", "reason", reason, "error", err)
	}
}
