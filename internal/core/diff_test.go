package core

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/illarion/textseal/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineDiff(t *testing.T) {
	vault := "line1\nline2\nline3\n"
	local := "line1\nchanged\nline3\n"

	lines := lineDiff(vault, local)
	want := []DiffLine{
		{' ', "line1"},
		{'-', "line2"},
		{'+', "changed"},
		{' ', "line3"},
	}
	assert.Equal(t, want, lines)
}

func TestLineDiff_Identical(t *testing.T) {
	result := &DiffResult{Lines: lineDiff("same\ntext\n", "same\ntext\n")}
	assert.True(t, result.Equal())
	assert.Len(t, result.Lines, 2)
}

func TestDiffFormat_Context(t *testing.T) {
	var vault, local []string
	for i := 0; i < 20; i++ {
		vault = append(vault, fmt.Sprintf("line %02d", i))
		local = append(local, fmt.Sprintf("line %02d", i))
	}
	local[10] = "line 10 edited"

	result := &DiffResult{Lines: lineDiff(strings.Join(vault, "\n")+"\n", strings.Join(local, "\n")+"\n")}
	require.False(t, result.Equal())

	out := result.Format()
	assert.Contains(t, out, "-line 10\n")
	assert.Contains(t, out, "+line 10 edited\n")
	assert.Contains(t, out, " line 07\n")
	assert.Contains(t, out, " line 13\n")
	assert.NotContains(t, out, "line 06")
	assert.NotContains(t, out, "line 14")
	assert.True(t, strings.HasPrefix(out, "...\n"))
	assert.True(t, strings.HasSuffix(out, "...\n"))
}

func TestVaultDiff(t *testing.T) {
	password := []byte("pw")
	vault, _ := newTestVault(t, password)
	ctx := context.Background()

	require.NoError(t, vault.Put(ctx, "env", "A=1\nB=2\n", password, crypto.Profile{}))

	result, err := vault.Diff(ctx, "env", "A=1\nB=2\n", password)
	require.NoError(t, err)
	assert.True(t, result.Equal())

	result, err = vault.Diff(ctx, "env", "A=1\nB=3\n", password)
	require.NoError(t, err)
	assert.False(t, result.Equal())
	assert.Contains(t, result.Format(), "-B=2\n+B=3\n")

	_, err = vault.Diff(ctx, "missing", "x", password)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
