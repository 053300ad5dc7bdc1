package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "u1", "alice", time.Hour)
	require.NoError(t, err)

	userID, err := VerifyToken("secret", token)
	require.NoError(t, err)
	require.Equal(t, "u1", userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "u1", "alice", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken("other", token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "u1", "alice", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("secret", token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	_, err := VerifyToken("secret", "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
