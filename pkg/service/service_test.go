package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/foldernote/pkg/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	tmpDir := t.TempDir()

	vaultDir := filepath.Join(tmpDir, "vault")
	notes := map[string]string{
		"index.md":            "# Home\n",
		"projects/index.md":   "# Projects\n",
		"projects/alpha.md":   "# Alpha\n\nSome project notes.\n",
		"archive/old-plan.md": "---\nfolder-index: true\n---\n\n# Old Plan\n",
	}
	for rel, content := range notes {
		abs := filepath.Join(vaultDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}

	svc, err := New(&Config{
		VaultDir:   vaultDir,
		DataDir:    filepath.Join(tmpDir, "data"),
		Resolution: models.DefaultConfig(),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestResolve(t *testing.T) {
	svc := newTestService(t)

	note, err := svc.Resolve("projects")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "projects/index.md", note.Path)

	// Marker beats the keyword convention.
	note, err = svc.Resolve("archive")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "archive/old-plan.md", note.Path)

	// Unknown folders resolve to nothing, not an error.
	note, err = svc.Resolve("does/not/exist")
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestMarkerLifecycle(t *testing.T) {
	svc := newTestService(t)

	has, err := svc.HasMarker("projects/alpha.md")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, svc.SetMarker("projects/alpha.md"))

	has, err = svc.HasMarker("projects/alpha.md")
	require.NoError(t, err)
	assert.True(t, has)

	// The marked note now wins resolution over index.md.
	note, err := svc.Resolve("projects")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "projects/alpha.md", note.Path)

	require.NoError(t, svc.UnsetMarker("projects/alpha.md"))

	note, err = svc.Resolve("projects")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "projects/index.md", note.Path)
}

func TestReindexAndSearch(t *testing.T) {
	svc := newTestService(t)

	count, err := svc.Reindex()
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	results, err := svc.Index.Search("alpha", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "projects/alpha.md", results[0].Path)
}

func TestDataDirCreated(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "nested", "data")

	svc, err := New(&Config{
		VaultDir:   tmpDir,
		DataDir:    dataDir,
		Resolution: models.DefaultConfig(),
	}, nil)
	require.NoError(t, err)
	defer svc.Close()

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
