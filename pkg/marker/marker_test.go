package marker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/foldernote/pkg/vault"
)

func setupVault(t *testing.T) (*vault.Vault, string) {
	t.Helper()
	dir := t.TempDir()

	content := `---
title: Roadmap
tags: [planning]
---

# Roadmap
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roadmap.md"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bare.md"), []byte("# Bare\n"), 0644))

	v, err := vault.Load(dir)
	require.NoError(t, err)
	return v, dir
}

func TestSetAndUnset(t *testing.T) {
	v, dir := setupVault(t)

	require.NoError(t, Set(v, "roadmap.md"))

	has, err := Has(v, "roadmap.md")
	require.NoError(t, err)
	assert.True(t, has)

	// The frontmatter keeps everything it already had.
	raw, err := os.ReadFile(filepath.Join(dir, "roadmap.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "title: Roadmap")
	assert.Contains(t, string(raw), "folder-index: true")

	require.NoError(t, Unset(v, "roadmap.md"))

	has, err = Has(v, "roadmap.md")
	require.NoError(t, err)
	assert.False(t, has)

	raw, err = os.ReadFile(filepath.Join(dir, "roadmap.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "folder-index")
	assert.Contains(t, string(raw), "title: Roadmap")
}

func TestSetOnNoteWithoutFrontmatter(t *testing.T) {
	v, dir := setupVault(t)

	require.NoError(t, Set(v, "bare.md"))

	raw, err := os.ReadFile(filepath.Join(dir, "bare.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "---\n"))
	assert.Contains(t, string(raw), "# Bare")

	has, err := Has(v, "bare.md")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSetIsIdempotent(t *testing.T) {
	v, dir := setupVault(t)

	require.NoError(t, Set(v, "roadmap.md"))
	first, err := os.ReadFile(filepath.Join(dir, "roadmap.md"))
	require.NoError(t, err)

	require.NoError(t, Set(v, "roadmap.md"))
	second, err := os.ReadFile(filepath.Join(dir, "roadmap.md"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestUnsetWithoutMarkerIsNoOp(t *testing.T) {
	v, dir := setupVault(t)

	before, err := os.ReadFile(filepath.Join(dir, "roadmap.md"))
	require.NoError(t, err)

	require.NoError(t, Unset(v, "roadmap.md"))

	after, err := os.ReadFile(filepath.Join(dir, "roadmap.md"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestUnknownNote(t *testing.T) {
	v, _ := setupVault(t)

	assert.Error(t, Set(v, "missing.md"))
	assert.Error(t, Unset(v, "missing.md"))
	_, err := Has(v, "missing.md")
	assert.Error(t, err)
}
