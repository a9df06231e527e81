package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNote(t *testing.T, dir, rel, content string) {
	t.Helper()
	abs := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "index.md", `---
title: Vault Home
tags: [home]
created: 2025-01-01 10:00:00
modified: 2025-02-01 10:00:00
---

# Vault Home
`)
	writeNote(t, dir, "projects/alpha.md", "# Alpha\n\nNotes on alpha.\n")
	writeNote(t, dir, "projects/beta.md", `---
folder-index: true
---

# Beta
`)
	writeNote(t, dir, "projects/deep/notes.md", "body without heading\n")
	writeNote(t, dir, ".obsidian/workspace.md", "hidden\n")
	writeNote(t, dir, "projects/readme.txt", "not a note\n")

	v, err := Load(dir)
	require.NoError(t, err)

	root := v.RootFolder()
	require.Len(t, root.Notes, 1)
	require.Len(t, root.Subfolders, 1)

	home := root.Notes[0]
	assert.Equal(t, "index.md", home.Name)
	assert.Equal(t, "Vault Home", home.Title)
	assert.Equal(t, []string{"home"}, home.Tags)
	assert.Equal(t, "2025-01-01 10:00:00", home.CreatedAt.Format("2006-01-02 15:04:05"))
	assert.Equal(t, "2025-02-01 10:00:00", home.ModifiedAt.Format("2006-01-02 15:04:05"))
	assert.False(t, home.Marker)

	projects := root.Subfolders[0]
	assert.Equal(t, "projects", projects.Path)
	require.Len(t, projects.Notes, 2)
	assert.Equal(t, "alpha.md", projects.Notes[0].Name)
	assert.Equal(t, "beta.md", projects.Notes[1].Name)
	assert.True(t, projects.Notes[1].Marker)

	require.Len(t, projects.Subfolders, 1)
	deep := projects.Subfolders[0]
	require.Len(t, deep.Notes, 1)
	assert.Equal(t, "Untitled", deep.Notes[0].Title)
	assert.Greater(t, deep.Notes[0].WordCount, 0)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = Load(file)
	assert.Error(t, err)
}

func TestLookups(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "a/b/c.md", "# C\n")

	v, err := Load(dir)
	require.NoError(t, err)

	f, ok := v.Folder("a/b")
	require.True(t, ok)
	assert.Equal(t, "b", f.Name)

	// "" and "." both address the root.
	rootA, okA := v.Folder("")
	rootB, okB := v.Folder(".")
	require.True(t, okA)
	require.True(t, okB)
	assert.Same(t, rootA, rootB)
	assert.Same(t, v.RootFolder(), rootA)

	n, ok := v.Note("a/b/c.md")
	require.True(t, ok)
	assert.Equal(t, "c.md", n.Name)

	_, ok = v.Folder("nope")
	assert.False(t, ok)
	_, ok = v.Note("nope.md")
	assert.False(t, ok)

	assert.Equal(t, filepath.Join(v.Root(), "a", "b", "c.md"), v.AbsPath("a/b/c.md"))
}

func TestMalformedFrontmatterDegrades(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "broken.md", "---\ntitle: [unclosed\n---\n\n# Broken\n")

	v, err := Load(dir)
	require.NoError(t, err)

	n, ok := v.Note("broken.md")
	require.True(t, ok)
	assert.Equal(t, "Broken", n.Title)
	assert.False(t, n.Marker)
}

func TestReloadNote(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "note.md", "# Before\n")

	v, err := Load(dir)
	require.NoError(t, err)

	n, ok := v.Note("note.md")
	require.True(t, ok)
	assert.Equal(t, "Before", n.Title)

	writeNote(t, dir, "note.md", "---\nfolder-index: true\n---\n\n# After\n")
	require.NoError(t, v.ReloadNote("note.md"))

	// Same pointer, fresh content: the tree sees the update.
	assert.Equal(t, "After", n.Title)
	assert.True(t, n.Marker)

	assert.Error(t, v.ReloadNote("missing.md"))
}

func TestChildOrderIsSorted(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "b.md", "x")
	writeNote(t, dir, "a.md", "x")
	writeNote(t, dir, "c.md", "x")
	writeNote(t, dir, "zed/n.md", "x")
	writeNote(t, dir, "alpha/n.md", "x")

	v, err := Load(dir)
	require.NoError(t, err)

	root := v.RootFolder()
	names := make([]string, len(root.Notes))
	for i, n := range root.Notes {
		names[i] = n.Name
	}
	assert.Equal(t, []string{"a.md", "b.md", "c.md"}, names)

	subs := make([]string, len(root.Subfolders))
	for i, f := range root.Subfolders {
		subs[i] = f.Name
	}
	assert.Equal(t, []string{"alpha", "zed"}, subs)
}
