package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

type countingVerifier struct {
	calls int
	next  Verifier
}

func (v *countingVerifier) Verify(token string) (*Claims, error) {
	v.calls++
	return v.next.Verify(token)
}

func newGuard(t *testing.T) (*Guard, *TokenService, *countingVerifier) {
	t.Helper()
	ts, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)
	cv := &countingVerifier{next: ts}
	return NewGuard(cv), ts, cv
}

func TestAdmit(t *testing.T) {
	g, ts, _ := newGuard(t)
	valid, err := ts.Issue("alice")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		present  bool
		kind     AuthErrorKind
		status   int
		label    string
		message  string
		sentinel error
	}{
		{name: "absent", present: false, kind: MissingToken, status: http.StatusUnauthorized,
			label: "Unauthorized", message: "No token provided.", sentinel: common.ErrMissingToken},
		{name: "empty header", header: "", present: true, kind: MalformedHeader, status: http.StatusBadRequest,
			label: "Bad Request", message: "Invalid token format.", sentinel: common.ErrMalformedHeader},
		{name: "no bearer prefix", header: valid, present: true, kind: MalformedHeader, status: http.StatusBadRequest,
			label: "Bad Request", message: "Invalid token format.", sentinel: common.ErrMalformedHeader},
		{name: "lower-case scheme", header: "bearer " + valid, present: true, kind: MalformedHeader, status: http.StatusBadRequest,
			label: "Bad Request", message: "Invalid token format.", sentinel: common.ErrMalformedHeader},
		{name: "garbage token", header: "Bearer nope", present: true, kind: InvalidToken, status: http.StatusUnauthorized,
			label: "Unauthorized", message: "Invalid token.", sentinel: common.ErrInvalidToken},
		{name: "bearer with nothing", header: "Bearer ", present: true, kind: InvalidToken, status: http.StatusUnauthorized,
			label: "Unauthorized", message: "Invalid token.", sentinel: common.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := g.Admit(tt.header, tt.present)
			require.Nil(t, claims)

			var ae *AuthError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tt.kind, ae.Kind)
			assert.Equal(t, tt.status, ae.Status())
			assert.Equal(t, tt.label, ae.Label())
			assert.Equal(t, tt.message, ae.Message())
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestAdmit_Valid(t *testing.T) {
	g, ts, _ := newGuard(t)
	tok, err := ts.Issue("alice")
	require.NoError(t, err)

	claims, err := g.Admit(common.BearerPrefix+tok, true)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserName())
}

func TestAdmit_ExpiredKeepsCause(t *testing.T) {
	g, ts, _ := newGuard(t)
	ts.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := ts.Issue("alice")
	require.NoError(t, err)

	_, err = g.Admit(common.BearerPrefix+tok, true)
	require.ErrorIs(t, err, common.ErrTokenExpired)
	require.NotContains(t, err.Error(), tok)
}

func TestAdmit_VerifiesEveryTime(t *testing.T) {
	g, ts, cv := newGuard(t)
	tok, err := ts.Issue("alice")
	require.NoError(t, err)

	for range 3 {
		_, err := g.Admit(common.BearerPrefix+tok, true)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, cv.calls)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	claims := &Claims{}
	claims.Subject = "alice"
	got, ok := PrincipalFromContext(WithPrincipal(context.Background(), claims))
	require.True(t, ok)
	assert.Same(t, claims, got)
}
