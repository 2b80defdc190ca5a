package auth

import (
	"errors"
	"time"
)

// TokenService binds the signing secret and the fixed token validity.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, validity time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: empty secret key")
	}
	if validity <= 0 {
		return nil, errors.New("token service: validity must be positive")
	}
	return &TokenService{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// Issue returns a token for userName that expires after the configured validity.
func (s *TokenService) Issue(userName string) (string, error) {
	return generateTokenAt(userName, s.secret, s.now().Add(s.validity))
}

func (s *TokenService) Verify(token string) (*Claims, error) {
	return ParseToken(token, s.secret)
}
