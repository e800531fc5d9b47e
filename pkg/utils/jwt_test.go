package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(secret string, previous ...string) *TokenManager {
	return NewTokenManager(JWTConfig{
		Secret:          secret,
		PreviousSecrets: previous,
		ExpiryHours:     24,
	})
}

func TestTokenManager_GenerateAndVerify(t *testing.T) {
	m := newTestTokenManager("secret")

	token, err := m.Generate("user-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenManager_Expired(t *testing.T) {
	m := newTestTokenManager("secret")
	issued := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Generate("user-1", "alice")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = m.Verify(token)
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := newTestTokenManager("one").Generate("user-1", "alice")
	require.NoError(t, err)

	_, err = newTestTokenManager("two").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Rotation(t *testing.T) {
	oldToken, err := newTestTokenManager("old").Generate("user-1", "alice")
	require.NoError(t, err)

	rotated := newTestTokenManager("new", "old")
	claims, err := rotated.Verify(oldToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	newToken, err := rotated.Generate("user-2", "bob")
	require.NoError(t, err)

	// Tokens from the new secret are not accepted by a manager that never knew it.
	_, err = newTestTokenManager("old").Verify(newToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsUnsignedAndMalformed(t *testing.T) {
	m := newTestTokenManager("secret")

	claims := TokenClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{UserID: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"alg none":   none,
		"no expiry":  noExpiry,
		"no user id": noUser,
		"garbage":    "not.a.token",
		"empty":      "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
