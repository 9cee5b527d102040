package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewTokenManager("test-secret", 60)

	token, err := m.GenerateToken("user-1", "creator")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "creator", claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, err := m.GenerateToken("user-1", "creator")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -1)

	token, err := m.GenerateToken("user-1", "creator")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", 60)
	_, err := m.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
