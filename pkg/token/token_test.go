package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthsharma-2/skillswap/pkg/token"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := token.GenerateJWT(42, true, testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := token.ValidateJWT(signed, testSecret)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "skillswap", claims.Issuer)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	signed, err := token.GenerateJWT(42, false, testSecret, 15)
	require.NoError(t, err)

	_, err = token.ValidateJWT(signed, "a-different-secret")
	assert.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	signed, err := token.GenerateJWT(42, false, testSecret, -5)
	require.NoError(t, err)

	_, err = token.ValidateJWT(signed, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateJWTEmptyInputs(t *testing.T) {
	_, err := token.ValidateJWT("", testSecret)
	assert.Error(t, err)

	_, err = token.ValidateJWT("not-a-token", "")
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	signed, err := token.GenerateRefreshToken(7, testSecret, 30)
	require.NoError(t, err)

	claims, err := token.ValidateJWT(signed, testSecret)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.False(t, claims.IsStaff)
}
