// Package resolver picks the single representative note for a folder.
//
// Resolution is a strictly ordered priority scheme: an explicit frontmatter
// marker on a direct child note wins outright, then the keyword naming
// convention, then the configured fallback over direct notes, and only for
// folders without direct notes the empty-folder strategies and the
// recursive fallback. The same tree snapshot and settings always produce
// the same note.
package resolver

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/grovetools/foldernote/pkg/models"
)

var collator = collate.New(language.English, collate.IgnoreCase)

// Resolve returns the representative note for folder, or nil when there is
// none. It is pure: no I/O, no mutation, deterministic for a fixed
// (folder, cfg) pair.
func Resolve(folder *models.Folder, cfg *models.Config) *models.Note {
	if folder == nil || cfg == nil {
		return nil
	}

	// Markers always take precedence, regardless of keyword settings.
	if note := markerMatch(folder); note != nil {
		return note
	}
	if note := keywordMatch(folder, cfg); note != nil {
		return note
	}

	// Direct notes exist but none of them is an index: the fallback
	// strategy decides, and its result is final.
	if len(folder.Notes) > 0 {
		return applyFallback(folder.Notes, cfg.FallbackStrategy)
	}

	switch cfg.EmptyFolderStrategy {
	case models.EmptyNone:
		return nil
	case models.EmptyRecentIndexInSubfolders:
		if note := recentSubfolderIndex(folder, cfg); note != nil {
			return note
		}
	case models.EmptyRecentNoteRecursive:
		if note := mostRecent(folder.AllNotes()); note != nil {
			return note
		}
	}

	// Notes exist somewhere deeper but no index was found: one last pass
	// with the fallback strategy over the full subtree.
	return applyFallback(folder.AllNotes(), cfg.FallbackStrategy)
}

// markerMatch scans direct child notes for the explicit index marker.
// With multiple marked notes the first in child order wins.
func markerMatch(folder *models.Folder) *models.Note {
	for _, note := range folder.Notes {
		if note.Marker {
			return note
		}
	}
	return nil
}

// keywordMatch applies the naming convention to direct child notes.
//
// Strict matching requires the filename to be exactly keyword + ".md".
// Loose matching prefers an exact case-insensitive stem match and falls
// back to case-insensitive substring containment.
func keywordMatch(folder *models.Folder, cfg *models.Config) *models.Note {
	keyword := cfg.Keyword
	if keyword == "" {
		return nil
	}

	if cfg.StrictMatching {
		want := keyword + models.NoteExtension
		for _, note := range folder.Notes {
			if note.Name == want {
				return note
			}
		}
		return nil
	}

	lower := strings.ToLower(keyword)
	for _, note := range folder.Notes {
		if strings.ToLower(note.Stem()) == lower {
			return note
		}
	}
	for _, note := range folder.Notes {
		if strings.Contains(strings.ToLower(note.Stem()), lower) {
			return note
		}
	}
	return nil
}

// recentSubfolderIndex asks each immediate child folder for its own index
// (marker or keyword only, never a fallback) and picks the most recently
// modified answer. The lookup is bounded to one level: a grandchild's
// index never surfaces here.
func recentSubfolderIndex(folder *models.Folder, cfg *models.Config) *models.Note {
	var found []*models.Note
	for _, sub := range folder.Subfolders {
		note := markerMatch(sub)
		if note == nil {
			note = keywordMatch(sub, cfg)
		}
		if note != nil {
			found = append(found, note)
		}
	}
	return mostRecent(found)
}

func applyFallback(notes []*models.Note, strategy models.FallbackStrategy) *models.Note {
	if len(notes) == 0 {
		return nil
	}
	switch strategy {
	case models.FallbackMostRecent:
		return mostRecent(notes)
	case models.FallbackAlphabetical:
		return alphabeticalFirst(notes)
	}
	return nil
}

// mostRecent keeps the earliest-seen note on timestamp ties, which is
// stable because callers hand over notes in child order.
func mostRecent(notes []*models.Note) *models.Note {
	var best *models.Note
	for _, note := range notes {
		if best == nil || note.ModifiedAt.After(best.ModifiedAt) {
			best = note
		}
	}
	return best
}

func alphabeticalFirst(notes []*models.Note) *models.Note {
	var best *models.Note
	for _, note := range notes {
		if best == nil || collator.CompareString(note.Name, best.Name) < 0 {
			best = note
		}
	}
	return best
}
