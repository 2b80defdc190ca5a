package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// AuthErrorKind classifies why a request was refused.
type AuthErrorKind int

const (
	MissingToken AuthErrorKind = iota + 1
	MalformedHeader
	InvalidToken
)

// AuthError is a guard rejection. It unwraps to the matching common sentinel
// and, for InvalidToken, to the verification error.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Message(), e.Err)
	}
	return "auth: " + e.Message()
}

func (e *AuthError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Status is the HTTP status of the rejection.
func (e *AuthError) Status() int {
	if e.Kind == MalformedHeader {
		return http.StatusBadRequest
	}
	return http.StatusUnauthorized
}

// Label is the short error name written to the response body.
func (e *AuthError) Label() string {
	return http.StatusText(e.Status())
}

// Message is the client facing explanation.
func (e *AuthError) Message() string {
	switch e.Kind {
	case MissingToken:
		return "No token provided."
	case MalformedHeader:
		return "Invalid token format."
	default:
		return "Invalid token."
	}
}

func (e *AuthError) sentinel() error {
	switch e.Kind {
	case MissingToken:
		return common.ErrMissingToken
	case MalformedHeader:
		return common.ErrMalformedHeader
	default:
		return common.ErrInvalidToken
	}
}

// Verifier checks a raw token.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Guard admits requests carrying a valid bearer token. Every call verifies
// the token again; nothing is cached.
type Guard struct {
	verifier Verifier
}

func NewGuard(verifier Verifier) *Guard {
	return &Guard{verifier: verifier}
}

// Admit inspects the Authorization header value. present reports whether
// the header was sent at all, so an empty header is malformed, not missing.
func (g *Guard) Admit(header string, present bool) (*Claims, error) {
	if !present {
		return nil, &AuthError{Kind: MissingToken}
	}

	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok {
		return nil, &AuthError{Kind: MalformedHeader}
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, &AuthError{Kind: InvalidToken, Err: err}
	}
	return claims, nil
}
