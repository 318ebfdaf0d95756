package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("u1", "alex", testSecret, 7*24*time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alex", claims.Nickname)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("u1", "alex", testSecret, time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("u1", "alex", testSecret, -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
