package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "chronotask/internal/errors"
)

func TestNewJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService("")
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_SessionTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret")
	assert.NoError(t, err)

	token, err := svc.GenerateSessionToken(42, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_ExpiredSessionToken(t *testing.T) {
	svc, _ := NewJWTService("test-secret")

	token, err := svc.GenerateSessionToken(42, -time.Minute)
	assert.NoError(t, err)

	claims, err := svc.ValidateSessionToken(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, _ := NewJWTService("secret-one")
	verifier, _ := NewJWTService("secret-two")

	token, err := issuer.GenerateSessionToken(7, time.Hour)
	assert.NoError(t, err)

	claims, err := verifier.ValidateSessionToken(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
}

func TestJWTService_ConfirmationTokenRoundTrip(t *testing.T) {
	svc, _ := NewJWTService("test-secret")

	token, err := svc.GenerateConfirmationToken("ann@x.com", 10*time.Minute)
	assert.NoError(t, err)

	email, err := svc.ValidateConfirmationToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ann@x.com", email)
}

func TestJWTService_SessionTokenIsNotConfirmationToken(t *testing.T) {
	svc, _ := NewJWTService("test-secret")

	token, err := svc.GenerateSessionToken(42, time.Hour)
	assert.NoError(t, err)

	// A session token carries no subject, so it must not confirm any email.
	email, err := svc.ValidateConfirmationToken(token)
	assert.Empty(t, email)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
}
