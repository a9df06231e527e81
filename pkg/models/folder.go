package models

import "sort"

// Folder is a node in the vault's directory tree. Children are kept sorted
// by name so that every traversal visits them in the same order.
type Folder struct {
	Path string `json:"path"` // Slash-delimited path relative to the vault root; "" for the root
	Name string `json:"name"`

	Notes      []*Note   `json:"notes,omitempty"`
	Subfolders []*Folder `json:"subfolders,omitempty"`

	Parent *Folder `json:"-"`
}

// SortChildren orders notes and subfolders by name. Loaders call this once
// per folder; the resolver relies on the resulting order for determinism.
func (f *Folder) SortChildren() {
	sort.Slice(f.Notes, func(i, j int) bool {
		return f.Notes[i].Name < f.Notes[j].Name
	})
	sort.Slice(f.Subfolders, func(i, j int) bool {
		return f.Subfolders[i].Name < f.Subfolders[j].Name
	})
}

// AllNotes returns every note in the folder's subtree, depth-first in child
// order. The receiver's direct notes come first.
func (f *Folder) AllNotes() []*Note {
	notes := make([]*Note, 0, len(f.Notes))
	notes = append(notes, f.Notes...)
	for _, sub := range f.Subfolders {
		notes = append(notes, sub.AllNotes()...)
	}
	return notes
}
