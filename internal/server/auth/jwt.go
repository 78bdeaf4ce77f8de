// Package auth implements the stateless credential primitives: the signed
// token codec and the one-way password hasher.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claim set; the account's login email travels
// in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for subject with issued-at now and an
// absolute expiry of now+validityDuration.
func GenerateToken(subject string, secretKey []byte, now time.Time, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses and verifies tokenString and returns the embedded
// subject. It is total: any empty, malformed, badly signed, expired, or
// unsupported-algorithm token yields ok=false, never an error or panic.
// Callers on the request hot path branch on the boolean.
func ValidateToken(tokenString string, secretKey []byte) (subject string, ok bool) {
	if tokenString == "" {
		return "", false
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}

	return claims.Subject, true
}
