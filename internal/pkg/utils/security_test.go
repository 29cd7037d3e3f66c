package utils

import (
	"hospital-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionJWT(t *testing.T) {
	const secret = "test-secret"

	t.Run("Round Trip", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", secret, time.Hour)
		require.NoError(t, err)

		sessionID, err := ParseJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "session-1", sessionID)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", secret, time.Hour)
		require.NoError(t, err)

		_, err = ParseJWT(token, "other-secret")
		assert.True(t, exceptions.IsKind(err, exceptions.KindUnauthenticated))
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-1", secret, -time.Minute)
		require.NoError(t, err)

		_, err = ParseJWT(token, secret)
		assert.True(t, exceptions.IsKind(err, exceptions.KindUnauthenticated))
	})

	t.Run("Missing Session Claim", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = ParseJWT(token, secret)
		assert.True(t, exceptions.IsKind(err, exceptions.KindUnauthenticated))
	})
}
