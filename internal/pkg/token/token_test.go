package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExpiryReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	signed := signedToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})

	got, err := Expiry(signed)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "expected %v, got %v", exp, got)
}

func TestExpiryWithoutExpClaim(t *testing.T) {
	signed := signedToken(t, jwt.MapClaims{"sub": "1"})

	_, err := Expiry(signed)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestExpiryOpaqueToken(t *testing.T) {
	// Backends are free to issue non-JWT tokens; those size to the default TTL
	_, err := Expiry("not-a-jwt-at-all")
	assert.ErrorIs(t, err, ErrNoExpiry)
}
