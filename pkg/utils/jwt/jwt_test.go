package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitRequiresSecret(t *testing.T) {
	require.Error(t, Init(""))
}

func TestTokenRoundTrip(t *testing.T) {
	require.NoError(t, Init("test-signing-secret"))

	token, err := GenerateToken(7, "admin@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "admin@example.com", claims.Email)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	require.NoError(t, Init("first-secret"))
	token, err := GenerateToken(1, "admin@example.com")
	require.NoError(t, err)

	require.NoError(t, Init("second-secret"))
	_, err = ValidateToken(token)
	require.Error(t, err)
}
