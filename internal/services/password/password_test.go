// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package password_test

import (
	"strings"
	"testing"

	"codeberg.org/oliverandrich/ledger-api/internal/services/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcrypt_InvalidCostFallsBack(t *testing.T) {
	tests := []struct {
		cost     int
		expected int
	}{
		{0, bcrypt.DefaultCost},
		{bcrypt.MinCost - 1, bcrypt.DefaultCost},
		{bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{bcrypt.MinCost, bcrypt.MinCost},
		{12, 12},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, password.NewBcrypt(tt.cost).Cost())
	}
}

func TestHash_NotPlaintext(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("abcdef")

	require.NoError(t, err)
	assert.NotEqual(t, "abcdef", digest)
	assert.True(t, strings.HasPrefix(digest, "$2a$"))
}

func TestHash_Salted(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("abcdef")
	require.NoError(t, err)
	second, err := h.Hash("abcdef")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost)
	digest, err := h.Hash("abcdef")
	require.NoError(t, err)

	assert.True(t, h.Verify("abcdef", digest))
	assert.False(t, h.Verify("abcdeg", digest))
	assert.False(t, h.Verify("", digest))
	assert.False(t, h.Verify("abcdef", "not-a-bcrypt-hash"))
}

func TestHash_TooLong(t *testing.T) {
	h := password.NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to hash password")
}
