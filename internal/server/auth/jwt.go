// Package auth issues and verifies bearer tokens, guards protected routes
// and hashes account passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// Claims carries the username in sub and the absolute expiry in exp.
type Claims struct {
	jwt.RegisteredClaims
}

// UserName returns the subject of the token.
func (c *Claims) UserName() string {
	return c.Subject
}

// GenerateToken signs an HS256 token for userName valid for validityDuration.
func GenerateToken(userName string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return generateTokenAt(userName, secretKey, time.Now().Add(validityDuration))
}

func generateTokenAt(userName string, secretKey []byte, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", common.ErrorInternal, err)
	}

	return tokenString, nil
}

// ParseToken verifies signature, algorithm and expiry. An expired token
// fails with common.ErrTokenExpired; any other failure wraps
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
