package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the session lifetime. The cookie carrying the token uses
// the same duration.
const TokenTTL = time.Hour

// ErrInvalidToken covers malformed, expired, and signature-mismatched
// tokens alike; callers never learn which.
var ErrInvalidToken = errors.New("invalid or expired token")

var jwtSecret string

type sessionClaims struct {
	Email string `json:"data"`
	jwt.RegisteredClaims
}

// Init stores the signing secret for the process. Must be called once
// at boot before any token is issued or verified.
func Init(secret string) error {
	if secret == "" {
		return fmt.Errorf("JWT secret is empty")
	}
	jwtSecret = secret
	return nil
}

// IssueToken signs a session token carrying the given email, valid for
// TokenTTL.
func IssueToken(email string) (string, error) {
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyToken returns the email the token was issued for, or
// ErrInvalidToken. The token is the caller's entire proof of identity;
// nothing beyond the email claim is inspected.
func VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)

	if !ok || claims.Email == "" {
		return "", ErrInvalidToken
	}

	return claims.Email, nil
}
