package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	require.Error(t, err)

	_, err = NewTokenService("k", 0)
	require.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	s, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)

	tok, err := s.Issue("alice")
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserName())
}

func TestTokenService_ExpiresAfterValidity(t *testing.T) {
	s, err := NewTokenService("secret", time.Minute)
	require.NoError(t, err)

	// issue as if two minutes ago
	s.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	tok, err := s.Issue("alice")
	require.NoError(t, err)

	_, err = s.Verify(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenService_OtherSecretRejected(t *testing.T) {
	a, err := NewTokenService("a", time.Hour)
	require.NoError(t, err)
	b, err := NewTokenService("b", time.Hour)
	require.NoError(t, err)

	tok, err := a.Issue("alice")
	require.NoError(t, err)

	_, err = b.Verify(tok)
	require.True(t, errors.Is(err, common.ErrInvalidToken))
}
