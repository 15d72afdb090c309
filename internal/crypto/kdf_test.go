package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_KnownValues(t *testing.T) {
	tests := []struct {
		password string
		length   int
		want     string
	}{
		{"correct horse", 8, "correct "},
		{"correct horse", 13, "correct horse"},
		{"correct horse", 16, "Y29ycmVjdCBob3Jz"},
		{"correct horse", 32, "V1RJNWVXTnRWbXBrUTBKdllqTktlbHBS"},
		{"a", 4, "YQ=="},
		{"a", 8, "WVE9PQ=="},
		{"a", 12, "V1ZFOVBRPT0="},
	}

	for _, tt := range tests {
		key, err := DeriveKey(tt.password, tt.length)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(key), "DeriveKey(%q, %d)", tt.password, tt.length)
	}
}

func TestDeriveKey_Length(t *testing.T) {
	passwords := []string{
		"a",
		"pw",
		"correct horse",
		"exactly-sixteen!",
		strings.Repeat("x", 32),
		strings.Repeat("long password ", 20),
		"пароль",
		"🔑🔑",
	}
	lengths := []int{1, 7, 8, 15, 16, 24, 31, 32, 33, 56, 64, 100, 1024}

	for _, pw := range passwords {
		for _, n := range lengths {
			key, err := DeriveKey(pw, n)
			require.NoError(t, err)
			assert.Len(t, key, n, "password %q length %d", pw, n)
		}
	}
}

func TestDeriveKey_ExactBoundary(t *testing.T) {
	pw := strings.Repeat("k", 32)

	key, err := DeriveKey(pw, 32)
	require.NoError(t, err)
	assert.Equal(t, pw, string(key))

	key, err = DeriveKey(pw+"!", 32)
	require.NoError(t, err)
	assert.Equal(t, pw, string(key))
}

func TestDeriveKey_Deterministic(t *testing.T) {
	first, err := DeriveKey("correct horse", 32)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := DeriveKey("correct horse", 32)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	other, err := DeriveKey("correct horsf", 32)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestDeriveKey_Errors(t *testing.T) {
	_, err := DeriveKey("", 32)
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = DeriveKey("pw", 0)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = DeriveKey("pw", -5)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestDeriveKey_StretchLimit(t *testing.T) {
	old := stretchRounds
	stretchRounds = 2
	defer func() { stretchRounds = old }()

	// "a" -> "YQ==" -> "WVE9PQ==" is 8 bytes after two rounds
	key, err := DeriveKey("a", 8)
	require.NoError(t, err)
	assert.Equal(t, "WVE9PQ==", string(key))

	_, err = DeriveKey("a", 9)
	assert.ErrorIs(t, err, ErrStretchLimit)
}
