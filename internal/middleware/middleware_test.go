package middleware

import (
	"Pasikuthu/domain"
	"Pasikuthu/pkg/auth"
	"Pasikuthu/pkg/jwt"
	"Pasikuthu/pkg/session"
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type recordingReloader struct {
	mu    sync.Mutex
	calls []*domain.Session
}

func (r *recordingReloader) Reload(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
	return nil
}

func (r *recordingReloader) last() *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

type guardFixture struct {
	app       *fiber.App
	jwt       jwt.JWTService
	auth      auth.AuthService
	lifecycle *session.Lifecycle
	reloader  *recordingReloader
}

func newGuardFixture(t *testing.T, sessionTTL time.Duration) *guardFixture {
	t.Helper()
	jwtService := jwt.NewJWTService(testSecret)
	authService := auth.NewAuthService(jwtService, nil, validator.New(), auth.Config{
		AppURL:       "http://localhost:3000",
		MagicLinkTTL: time.Minute,
		SessionTTL:   sessionTTL,
	})
	reloader := &recordingReloader{}
	lifecycle := session.NewLifecycle(authService, reloader)
	require.NoError(t, lifecycle.Start(context.Background()))
	t.Cleanup(lifecycle.Close)

	app := fiber.New()
	app.Get("/guarded", NewMiddleware().AuthMiddleware(jwtService, lifecycle), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})

	return &guardFixture{app: app, jwt: jwtService, auth: authService, lifecycle: lifecycle, reloader: reloader}
}

func (f *guardFixture) signIn(t *testing.T, email string) *domain.Session {
	t.Helper()
	link, err := f.jwt.GenerateMagicLinkToken(email, time.Minute)
	require.NoError(t, err)
	signedIn, err := f.auth.VerifyOtp(context.Background(), link)
	require.NoError(t, err)
	return signedIn
}

func (f *guardFixture) get(t *testing.T, authorization string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware_RejectsWithoutSession(t *testing.T) {
	f := newGuardFixture(t, time.Hour)

	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Bearer anything"))
}

func TestAuthMiddleware_AdmitsCurrentSessionToken(t *testing.T) {
	f := newGuardFixture(t, time.Hour)
	signedIn := f.signIn(t, "donor@example.com")

	assert.Equal(t, fiber.StatusOK, f.get(t, "Bearer "+signedIn.AccessToken))
}

func TestAuthMiddleware_RejectsMissingOrMalformedHeader(t *testing.T) {
	f := newGuardFixture(t, time.Hour)
	signedIn := f.signIn(t, "donor@example.com")

	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, signedIn.AccessToken))
	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Basic "+signedIn.AccessToken))
}

func TestAuthMiddleware_RejectsForgedTokens(t *testing.T) {
	f := newGuardFixture(t, time.Hour)
	f.signIn(t, "donor@example.com")

	otherSecret, _, err := jwt.NewJWTService("other-secret").GenerateSessionToken("user-1", "donor@example.com", time.Hour)
	require.NoError(t, err)
	notCurrent, _, err := f.jwt.GenerateSessionToken("someone-else", "intruder@example.com", time.Hour)
	require.NoError(t, err)
	magicLink, err := f.jwt.GenerateMagicLinkToken("donor@example.com", time.Minute)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Bearer forged"))
	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Bearer "+otherSecret))
	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Bearer "+notCurrent))
	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Bearer "+magicLink))
}

func TestAuthMiddleware_ExpiredSessionSignsOutAndClearsCollection(t *testing.T) {
	f := newGuardFixture(t, -time.Hour)

	var events []domain.AuthEvent
	sub := f.auth.OnAuthStateChange(func(event domain.AuthEvent, _ *domain.Session) {
		events = append(events, event)
	})
	defer sub.Unsubscribe()

	expired := f.signIn(t, "donor@example.com")
	require.NotNil(t, f.lifecycle.Session())

	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Bearer "+expired.AccessToken))
	assert.Equal(t, fiber.StatusUnauthorized, f.get(t, "Bearer forged"))

	assert.Equal(t, []domain.AuthEvent{domain.AuthEventSignedIn, domain.AuthEventSignedOut}, events)
	assert.Nil(t, f.lifecycle.Session())
	assert.Nil(t, f.reloader.last())
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	token, ok = bearerToken("bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = bearerToken("abc")
	assert.False(t, ok)
}
