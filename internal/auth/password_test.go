package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass1234")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pass1234", hash)

	assert.NoError(t, CheckPassword(hash, "pass1234"))
	assert.Error(t, CheckPassword(hash, "pass1235"))
}
