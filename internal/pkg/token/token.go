// Package token inspects backend-issued bearer tokens.
//
// The portal does not own the backend's signing secret, so nothing here
// verifies signatures. The expiry claim is read on trust to size the session
// lifetime; the backend remains the authority on whether a token is valid.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoExpiry = errors.New("token carries no expiry claim")

// Expiry returns the exp claim of a JWT without verifying its signature.
// Returns ErrNoExpiry when the token is not a JWT or has no exp claim; callers
// fall back to the configured session TTL in that case.
func Expiry(tokenString string) (time.Time, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, ErrNoExpiry
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}
