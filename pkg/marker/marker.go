// Package marker sets and clears the explicit folder-index marker on a
// note's frontmatter. Both operations are idempotent: the marker is a
// boolean key, never a counter.
package marker

import (
	"fmt"
	"os"

	"github.com/grovetools/foldernote/pkg/frontmatter"
	"github.com/grovetools/foldernote/pkg/vault"
)

// Set writes the marker on the note at rel and refreshes the loaded tree.
func Set(v *vault.Vault, rel string) error {
	return rewrite(v, rel, func(content string) (string, error) {
		return frontmatter.SetKey(content, frontmatter.MarkerKey, true)
	})
}

// Unset removes the marker from the note at rel.
func Unset(v *vault.Vault, rel string) error {
	return rewrite(v, rel, func(content string) (string, error) {
		return frontmatter.DeleteKey(content, frontmatter.MarkerKey)
	})
}

// Has reports whether the note at rel currently carries the marker.
func Has(v *vault.Vault, rel string) (bool, error) {
	note, ok := v.Note(rel)
	if !ok {
		return false, fmt.Errorf("note not found: %s", rel)
	}
	return note.Marker, nil
}

func rewrite(v *vault.Vault, rel string, edit func(string) (string, error)) error {
	if _, ok := v.Note(rel); !ok {
		return fmt.Errorf("note not found: %s", rel)
	}

	abs := v.AbsPath(rel)
	content, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}

	updated, err := edit(string(content))
	if err != nil {
		return err
	}
	if updated == string(content) {
		return nil
	}

	if err := os.WriteFile(abs, []byte(updated), 0644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return v.ReloadNote(rel)
}
