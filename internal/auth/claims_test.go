package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDTokenRoundTrip(t *testing.T) {
	secret := []byte("token-secret")

	signed, err := SignIDToken(secret, "ident-1", "round@example.org", "Round Trip", time.Now().Add(time.Hour))
	require.NoError(t, err)

	raw, err := ParseIDToken(secret, signed)
	require.NoError(t, err)

	claims, err := DecodeIdentityClaims(raw)
	require.NoError(t, err)
	assert.Equal(t, "ident-1", claims.Subject)
	assert.Equal(t, "round@example.org", claims.Email)
	assert.Equal(t, "Round Trip", claims.Name)
}

func TestParseIDToken(t *testing.T) {
	secret := []byte("token-secret")

	t.Run("wrong secret rejected", func(t *testing.T) {
		signed, err := SignIDToken(secret, "ident-1", "a@example.org", "", time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = ParseIDToken([]byte("other-secret"), signed)
		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		signed, err := SignIDToken(secret, "ident-1", "a@example.org", "", time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = ParseIDToken(secret, signed)
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseIDToken(secret, "not-a-token")
		assert.Error(t, err)
	})
}

func TestDecodeIdentityClaims(t *testing.T) {
	t.Run("missing sub rejected", func(t *testing.T) {
		_, err := DecodeIdentityClaims(map[string]any{"email": "a@example.org"})
		assert.Error(t, err)
	})

	t.Run("empty sub rejected", func(t *testing.T) {
		_, err := DecodeIdentityClaims(map[string]any{"sub": ""})
		assert.Error(t, err)
	})

	t.Run("unknown claims ignored", func(t *testing.T) {
		claims, err := DecodeIdentityClaims(map[string]any{
			"sub": "ident-1",
			"iss": "hhfapi",
			"exp": float64(4102444800),
		})
		require.NoError(t, err)
		assert.Equal(t, "ident-1", claims.Subject)
	})
}

func TestExtractClaimString(t *testing.T) {
	claims := map[string]any{"sub": "ident-1", "count": 3}

	value, err := ExtractClaimString(claims, "sub")
	require.NoError(t, err)
	assert.Equal(t, "ident-1", value)

	_, err = ExtractClaimString(claims, "missing")
	assert.Error(t, err)

	_, err = ExtractClaimString(claims, "count")
	assert.Error(t, err)
}
