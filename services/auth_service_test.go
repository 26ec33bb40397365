package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"trip-planner/utils/errors"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("mikan"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(string(hash), "test-secret")
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	auth := newTestAuth(t)

	token, err := auth.Login("mikan")
	require.NoError(t, err)

	subject, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenSubject, subject)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth := newTestAuth(t)

	_, err := auth.Login("yuzu")
	require.Error(t, err)
	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
}

func TestParseTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	auth := newTestAuth(t)
	auth.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, err := auth.Login("mikan")
	require.NoError(t, err)

	_, err = auth.ParseToken(expired)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": tokenSubject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = auth.ParseToken(foreign)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}
