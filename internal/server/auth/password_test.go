package auth

import (
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = &argon2id.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasherWithParams(testParams)

	encoded, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	assert.NotContains(t, encoded, "s3cret")

	assert.True(t, h.Verify("s3cret", encoded))
	assert.False(t, h.Verify("wrong", encoded))
	assert.False(t, h.Verify("s3cret", "plaintext-from-an-old-row"))
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasherWithParams(testParams)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewPasswordHasher_Defaults(t *testing.T) {
	assert.Equal(t, argon2id.DefaultParams, NewPasswordHasher().params)
}
