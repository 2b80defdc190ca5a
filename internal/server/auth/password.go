package auth

import (
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
)

// PasswordHasher stores passwords as argon2id encoded hashes.
type PasswordHasher struct {
	params *argon2id.Params
}

func NewPasswordHasher() *PasswordHasher {
	return NewPasswordHasherWithParams(argon2id.DefaultParams)
}

func NewPasswordHasherWithParams(params *argon2id.Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

func (h *PasswordHasher) Hash(plain string) (string, error) {
	hash, err := argon2id.CreateHash(plain, h.params)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}
	return hash, nil
}

// Verify reports whether plain matches encoded. A malformed hash never matches.
func (h *PasswordHasher) Verify(plain, encoded string) bool {
	match, err := argon2id.ComparePasswordAndHash(plain, encoded)
	return err == nil && match
}
