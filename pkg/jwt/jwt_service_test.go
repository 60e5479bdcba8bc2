package jwt

import (
	"Pasikuthu/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, expiresAt, err := svc.GenerateSessionToken("user-1", "donor@example.com", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "donor@example.com", claims.Email)
}

func TestMagicLinkToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateMagicLinkToken("donor@example.com", 15*time.Minute)
	require.NoError(t, err)

	email, err := svc.ValidateMagicLinkToken(token)
	require.NoError(t, err)
	assert.Equal(t, "donor@example.com", email)
}

func TestTokens_AreNotInterchangeable(t *testing.T) {
	svc := NewJWTService("test-secret")

	link, err := svc.GenerateMagicLinkToken("donor@example.com", time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateSessionToken(link)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	session, _, err := svc.GenerateSessionToken("user-1", "donor@example.com", time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateMagicLinkToken(session)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokens_ExpiredAndForeign(t *testing.T) {
	svc := NewJWTService("test-secret")

	expired, err := svc.GenerateMagicLinkToken("donor@example.com", -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateMagicLinkToken(expired)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	foreign, err := NewJWTService("other-secret").GenerateMagicLinkToken("donor@example.com", time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateMagicLinkToken(foreign)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.ValidateSessionToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
