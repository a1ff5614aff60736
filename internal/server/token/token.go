// Package token signs and verifies the opaque bearer tokens that carry a
// caller's identity claim between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates that a token is structurally malformed or its
// signature does not match the current secret.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload embedded in a bearer token. A Claims
// value is only trustworthy when it was produced by a successful Verify
// under the current process secret.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens with a process-wide HMAC secret.
// Tokens carry no expiry: rotating the secret invalidates everything
// issued before it.
type Codec struct {
	secret []byte
}

// NewCodec creates a token codec for the given signing secret
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Sign creates a signed token for the given identity
func (c *Codec) Sign(email, username string) (string, error) {
	claims := Claims{
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify validates tokenString against the current secret and returns the
// embedded claims. Any structural or signature failure yields
// ErrInvalidToken; no issuer, audience or expiry checks are performed.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
