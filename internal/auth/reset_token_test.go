package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewResetToken(t *testing.T) {
	plaintext, digest, expires, err := NewResetToken()
	assert.NoError(t, err)

	// 32 random bytes, hex encoded.
	assert.Len(t, plaintext, 64)
	assert.Len(t, digest, 64)
	assert.NotEqual(t, plaintext, digest)

	// Hashing the plaintext must reproduce the stored digest.
	assert.Equal(t, digest, HashResetToken(plaintext))

	assert.WithinDuration(t, time.Now().Add(ResetTokenTTL), expires, 5*time.Second)
}

func TestNewResetToken_Unique(t *testing.T) {
	a, _, _, err := NewResetToken()
	assert.NoError(t, err)
	b, _, _, err := NewResetToken()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
