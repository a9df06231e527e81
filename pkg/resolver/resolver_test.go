package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/foldernote/pkg/models"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func note(name string, modOffset time.Duration) *models.Note {
	return &models.Note{
		Path:       name,
		Name:       name,
		ModifiedAt: baseTime.Add(modOffset),
	}
}

func markedNote(name string, modOffset time.Duration) *models.Note {
	n := note(name, modOffset)
	n.Marker = true
	return n
}

func folderWith(name string, notes ...*models.Note) *models.Folder {
	return &models.Folder{Path: name, Name: name, Notes: notes}
}

func addSub(parent, child *models.Folder) {
	child.Parent = parent
	parent.Subfolders = append(parent.Subfolders, child)
}

func cfg() *models.Config {
	return models.DefaultConfig()
}

func TestResolveNilInputs(t *testing.T) {
	assert.Nil(t, Resolve(nil, cfg()))
	assert.Nil(t, Resolve(folderWith("f"), nil))
}

func TestResolveMarkerWinsOverKeyword(t *testing.T) {
	f := folderWith("projects",
		note("index.md", 0),
		markedNote("roadmap.md", -time.Hour),
	)

	got := Resolve(f, cfg())
	require.NotNil(t, got)
	assert.Equal(t, "roadmap.md", got.Name)
}

func TestResolveMarkerFirstInChildOrderWins(t *testing.T) {
	f := folderWith("projects",
		markedNote("a.md", 0),
		markedNote("b.md", time.Hour),
	)

	got := Resolve(f, cfg())
	require.NotNil(t, got)
	assert.Equal(t, "a.md", got.Name)
}

func TestResolveKeywordExactStem(t *testing.T) {
	f := folderWith("projects",
		note("notes.md", time.Hour),
		note("Index.md", 0),
	)

	got := Resolve(f, cfg())
	require.NotNil(t, got)
	assert.Equal(t, "Index.md", got.Name)
}

func TestResolveKeywordExactStemBeatsSubstring(t *testing.T) {
	f := folderWith("projects",
		note("MyIndexNotes.md", time.Hour),
		note("index.md", 0),
	)

	got := Resolve(f, cfg())
	require.NotNil(t, got)
	assert.Equal(t, "index.md", got.Name)
}

func TestResolveKeywordSubstringFallback(t *testing.T) {
	f := folderWith("projects",
		note("notes.md", 0),
		note("MyIndexNotes.md", -time.Hour),
	)

	got := Resolve(f, cfg())
	require.NotNil(t, got)
	assert.Equal(t, "MyIndexNotes.md", got.Name)
}

func TestResolveStrictMatchingRequiresExactFilename(t *testing.T) {
	c := cfg()
	c.StrictMatching = true
	c.FallbackStrategy = models.FallbackNone

	// Neither a different case nor a substring counts under strict rules.
	f := folderWith("projects",
		note("Index.md", 0),
		note("MyIndexNotes.md", time.Hour),
	)
	assert.Nil(t, Resolve(f, c))

	f2 := folderWith("projects",
		note("Index.md", 0),
		note("index.md", -time.Hour),
	)
	got := Resolve(f2, c)
	require.NotNil(t, got)
	assert.Equal(t, "index.md", got.Name)
}

func TestResolveCustomKeyword(t *testing.T) {
	c := cfg()
	c.Keyword = "readme"

	f := folderWith("projects",
		note("index.md", time.Hour),
		note("readme.md", 0),
	)

	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Equal(t, "readme.md", got.Name)
}

func TestResolveFallbackMostRecent(t *testing.T) {
	c := cfg()
	c.FallbackStrategy = models.FallbackMostRecent

	f := folderWith("projects",
		note("older.md", 0),
		note("newer.md", time.Hour),
	)

	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Equal(t, "newer.md", got.Name)
}

func TestResolveFallbackMostRecentTieKeepsChildOrder(t *testing.T) {
	c := cfg()
	c.FallbackStrategy = models.FallbackMostRecent

	f := folderWith("projects",
		note("a.md", 0),
		note("b.md", 0),
	)

	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Equal(t, "a.md", got.Name)
}

func TestResolveFallbackAlphabetical(t *testing.T) {
	c := cfg()
	c.FallbackStrategy = models.FallbackAlphabetical

	f := folderWith("projects",
		note("b.md", time.Hour),
		note("a.md", 0),
	)

	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Equal(t, "a.md", got.Name)
}

func TestResolveFallbackNone(t *testing.T) {
	c := cfg()
	c.FallbackStrategy = models.FallbackNone

	f := folderWith("projects",
		note("a.md", 0),
		note("b.md", time.Hour),
	)

	assert.Nil(t, Resolve(f, c))
}

func TestResolveFallbackDecisionIsFinal(t *testing.T) {
	// Direct notes exist, so the empty-folder strategies never run even
	// when the fallback produces nothing.
	c := cfg()
	c.FallbackStrategy = models.FallbackNone
	c.EmptyFolderStrategy = models.EmptyRecentNoteRecursive

	f := folderWith("projects", note("a.md", 0))
	sub := folderWith("projects/sub", note("index.md", time.Hour))
	addSub(f, sub)

	assert.Nil(t, Resolve(f, c))
}

func TestResolveEmptyFolderSubfolderIndex(t *testing.T) {
	c := cfg()
	c.EmptyFolderStrategy = models.EmptyRecentIndexInSubfolders

	f := folderWith("projects")
	subA := folderWith("projects/a", note("index.md", 0))
	subB := folderWith("projects/b", note("index.md", time.Hour))
	addSub(f, subA)
	addSub(f, subB)

	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Same(t, subB.Notes[0], got)
}

func TestResolveEmptyFolderSubfolderIndexDepthBound(t *testing.T) {
	// An index two levels down is invisible to the subfolder-index
	// strategy; resolution falls through to the recursive fallback.
	c := cfg()
	c.EmptyFolderStrategy = models.EmptyRecentIndexInSubfolders
	c.FallbackStrategy = models.FallbackNone

	f := folderWith("projects")
	child := folderWith("projects/child")
	grandchild := folderWith("projects/child/grand", note("index.md", 0))
	addSub(f, child)
	addSub(child, grandchild)

	assert.Nil(t, Resolve(f, c))

	c.FallbackStrategy = models.FallbackMostRecent
	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Equal(t, "index.md", got.Name)
}

func TestResolveEmptyFolderSubfolderMarkerCounts(t *testing.T) {
	c := cfg()
	c.EmptyFolderStrategy = models.EmptyRecentIndexInSubfolders

	f := folderWith("projects")
	sub := folderWith("projects/a", markedNote("overview.md", 0))
	addSub(f, sub)

	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Equal(t, "overview.md", got.Name)
}

func TestResolveEmptyFolderRecentNoteRecursive(t *testing.T) {
	c := cfg()
	c.EmptyFolderStrategy = models.EmptyRecentNoteRecursive

	f := folderWith("projects")
	child := folderWith("projects/child", note("notes.md", 0))
	grandchild := folderWith("projects/child/grand", note("deep.md", time.Hour))
	addSub(f, child)
	addSub(child, grandchild)

	got := Resolve(f, c)
	require.NotNil(t, got)
	assert.Equal(t, "deep.md", got.Name)
}

func TestResolveEmptyStrategyNoneStopsImmediately(t *testing.T) {
	c := cfg()
	c.EmptyFolderStrategy = models.EmptyNone
	c.FallbackStrategy = models.FallbackMostRecent

	f := folderWith("projects")
	sub := folderWith("projects/a", note("notes.md", 0))
	addSub(f, sub)

	assert.Nil(t, Resolve(f, c))
}

func TestResolveNoNotesAnywhere(t *testing.T) {
	c := cfg()
	c.FallbackStrategy = models.FallbackMostRecent
	c.EmptyFolderStrategy = models.EmptyRecentNoteRecursive

	f := folderWith("projects")
	addSub(f, folderWith("projects/empty"))

	assert.Nil(t, Resolve(f, c))
}

func TestResolveDeterministic(t *testing.T) {
	c := cfg()
	c.FallbackStrategy = models.FallbackMostRecent

	f := folderWith("projects",
		note("a.md", 0),
		note("b.md", time.Hour),
		note("c.md", time.Hour),
	)

	first := Resolve(f, c)
	for i := 0; i < 10; i++ {
		assert.Same(t, first, Resolve(f, c))
	}
}
