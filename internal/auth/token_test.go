package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaara40/academic-department-website-sub000/internal/auth"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 60)

	signed, err := tokens.Issue("user-1", "admin@cs.example.ac.il")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@cs.example.ac.il", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 60)
	other := auth.NewTokenService("other-secret", 60)

	signed, err := tokens.Issue("user-1", "admin@cs.example.ac.il")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 60)

	_, err := tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = tokens.Verify("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_ClaimsWindow(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 60)
	signed, err := tokens.Issue("user-1", "admin@cs.example.ac.il")
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, auth.CheckPassword(hash, "correct-horse"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
	assert.False(t, auth.CheckPassword("not-a-hash", "correct-horse"))
}
