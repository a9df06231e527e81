// Package vault loads a note collection from disk into an in-memory tree.
// The loaded tree is a read-only snapshot: resolution never touches the
// filesystem.
package vault

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/grovetools/foldernote/pkg/frontmatter"
	"github.com/grovetools/foldernote/pkg/models"
)

// Vault holds the loaded folder tree plus lookup maps keyed by
// slash-delimited relative path.
type Vault struct {
	root    string // absolute path on disk
	tree    *models.Folder
	folders map[string]*models.Folder
	notes   map[string]*models.Note
}

// Load reads the vault rooted at dir. Dotfiles and dot-directories are
// skipped; only .md files become notes.
func Load(dir string) (*Vault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", dir)
	}

	v := &Vault{
		root:    abs,
		folders: make(map[string]*models.Folder),
		notes:   make(map[string]*models.Note),
	}

	v.tree, err = v.loadFolder("", path.Base(filepath.ToSlash(abs)), nil)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Root returns the vault's absolute path on disk.
func (v *Vault) Root() string {
	return v.root
}

// RootFolder returns the top of the loaded tree.
func (v *Vault) RootFolder() *models.Folder {
	return v.tree
}

// Folder looks up a folder by its relative path. "" and "." address the
// root. A miss is not an error.
func (v *Vault) Folder(rel string) (*models.Folder, bool) {
	f, ok := v.folders[normalize(rel)]
	return f, ok
}

// Note looks up a note by its relative path. A miss is not an error.
func (v *Vault) Note(rel string) (*models.Note, bool) {
	n, ok := v.notes[normalize(rel)]
	return n, ok
}

// AbsPath maps a relative vault path to its location on disk.
func (v *Vault) AbsPath(rel string) string {
	return filepath.Join(v.root, filepath.FromSlash(normalize(rel)))
}

// ReloadNote re-reads a single note from disk after an external edit,
// updating the loaded tree in place.
func (v *Vault) ReloadNote(rel string) error {
	rel = normalize(rel)
	old, ok := v.notes[rel]
	if !ok {
		return fmt.Errorf("note not loaded: %s", rel)
	}
	fresh, err := parseNote(v.AbsPath(rel), rel)
	if err != nil {
		return fmt.Errorf("reload note: %w", err)
	}
	*old = *fresh
	return nil
}

func (v *Vault) loadFolder(rel, name string, parent *models.Folder) (*models.Folder, error) {
	folder := &models.Folder{
		Path:   rel,
		Name:   name,
		Parent: parent,
	}

	entries, err := os.ReadDir(v.AbsPath(rel))
	if err != nil {
		return nil, fmt.Errorf("read folder %q: %w", rel, err)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		childRel := path.Join(rel, entry.Name())

		if entry.IsDir() {
			sub, err := v.loadFolder(childRel, entry.Name(), folder)
			if err != nil {
				return nil, err
			}
			folder.Subfolders = append(folder.Subfolders, sub)
			continue
		}

		if !strings.HasSuffix(entry.Name(), models.NoteExtension) {
			continue
		}
		note, err := parseNote(v.AbsPath(childRel), childRel)
		if err != nil {
			// A single unreadable note does not fail the whole load.
			continue
		}
		folder.Notes = append(folder.Notes, note)
		v.notes[childRel] = note
	}

	folder.SortChildren()
	v.folders[rel] = folder
	return folder, nil
}

// parseNote reads a note file and builds its model. Frontmatter values
// override what the filesystem reports.
func parseNote(absPath, rel string) (*models.Note, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	contentStr := string(content)

	fm, body, err := frontmatter.Parse(contentStr)
	if err != nil {
		// Malformed frontmatter degrades to a plain note.
		fm = nil
		body = contentStr
	}

	note := &models.Note{
		Path:       rel,
		Name:       path.Base(rel),
		Title:      extractTitle(body),
		CreatedAt:  info.ModTime(),
		ModifiedAt: info.ModTime(),
		WordCount:  len(strings.Fields(body)),
	}

	if fm != nil {
		if fm.Title != "" {
			note.Title = fm.Title
		}
		if len(fm.Tags) > 0 {
			note.Tags = fm.Tags
		}
		note.Marker = fm.FolderIndex
		if fm.Created != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Created); err == nil {
				note.CreatedAt = t
			}
		}
		if fm.Modified != "" {
			if t, err := frontmatter.ParseTimestamp(fm.Modified); err == nil {
				note.ModifiedAt = t
			}
		}
	}

	return note, nil
}

// extractTitle gets the title from markdown content
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return "Untitled"
}

func normalize(rel string) string {
	rel = strings.Trim(strings.TrimSpace(rel), "/")
	if rel == "." {
		return ""
	}
	return rel
}
