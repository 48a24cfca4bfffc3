package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	cfg := DefaultConfig("test-secret", time.Hour)

	tok, err := GenerateToken("64b000000000000000000001", "maya", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(tok, cfg)
	require.NoError(t, err)
	assert.Equal(t, "64b000000000000000000001", claims.UserID)
	assert.Equal(t, "maya", claims.Username)
	assert.Equal(t, "spire-api", claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	cfg := DefaultConfig("test-secret", time.Hour)
	tok, err := GenerateToken("u1", "maya", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(tok, DefaultConfig("other-secret", time.Hour))
	assert.Error(t, err)

	expired := DefaultConfig("test-secret", time.Hour)
	expired.AccessExpiry = -time.Minute
	old, err := GenerateToken("u1", "maya", expired)
	require.NoError(t, err)
	_, err = ValidateToken(old, cfg)
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", cfg)
	assert.Error(t, err)

	_, err = GenerateToken("u1", "maya", nil)
	assert.ErrorIs(t, err, ErrMissingConfig)
}
