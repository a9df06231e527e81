package models

import (
	"strings"
	"time"
)

// Note represents a single markdown note in the vault.
type Note struct {
	Path       string    `json:"path"`  // Slash-delimited path relative to the vault root
	Name       string    `json:"name"`  // Base filename, including extension
	Title      string    `json:"title"` // From frontmatter, or the first heading
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	WordCount  int       `json:"word_count"`
	Marker     bool      `json:"marker"` // Explicit folder-index marker from frontmatter
}

// Stem returns the note name without its extension.
func (n *Note) Stem() string {
	return strings.TrimSuffix(n.Name, NoteExtension)
}

// NoteExtension is the conventional extension for notes in a vault.
const NoteExtension = ".md"
