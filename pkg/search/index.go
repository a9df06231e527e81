package search

import (
	"database/sql"
	"fmt"
	"path"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/grovetools/foldernote/pkg/models"
	"github.com/grovetools/foldernote/pkg/vault"
)

// Index manages the note search index
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex creates a new search index
func NewIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS notes_meta (
		path TEXT PRIMARY KEY,
		folder TEXT,
		name TEXT,
		title TEXT,
		modified_at TIMESTAMP,
		word_count INTEGER,
		marker BOOLEAN
	);

	CREATE INDEX IF NOT EXISTS idx_notes_meta_folder ON notes_meta(folder);
	CREATE INDEX IF NOT EXISTS idx_notes_meta_marker ON notes_meta(marker);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			path UNINDEXED,
			folder,
			name,
			title,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// IndexNote indexes or reindexes a note
func (idx *Index) IndexNote(note *models.Note) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := indexNoteTx(tx, note, idx.useFTS); err != nil {
		return err
	}

	return tx.Commit()
}

func indexNoteTx(tx *sql.Tx, note *models.Note, useFTS bool) error {
	folder := path.Dir(note.Path)
	if folder == "." {
		folder = ""
	}

	if useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts WHERE path = ?", note.Path); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO notes_fts (path, folder, name, title)
			VALUES (?, ?, ?, ?)
		`, note.Path, folder, note.Name, note.Title); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM notes_meta WHERE path = ?", note.Path); err != nil {
		return err
	}
	_, err := tx.Exec(`
		INSERT INTO notes_meta (path, folder, name, title, modified_at, word_count, marker)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, note.Path, folder, note.Name, note.Title, note.ModifiedAt, note.WordCount, note.Marker)
	return err
}

// Reindex rebuilds the whole index from a vault snapshot.
func (idx *Index) Reindex(v *vault.Vault) (int, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts"); err != nil {
			return 0, err
		}
	}
	if _, err := tx.Exec("DELETE FROM notes_meta"); err != nil {
		return 0, err
	}

	notes := v.RootFolder().AllNotes()
	for _, note := range notes {
		if err := indexNoteTx(tx, note, idx.useFTS); err != nil {
			return 0, fmt.Errorf("index %s: %w", note.Path, err)
		}
	}

	return len(notes), tx.Commit()
}

// Options for searching
type Options struct {
	Folder     string // Restrict matches to one folder subtree
	MarkerOnly bool   // Only notes carrying the folder-index marker
	Limit      int
}

// Search performs a full-text search over indexed notes
func (idx *Index) Search(query string, opts *Options) ([]*models.Note, error) {
	if opts == nil {
		opts = &Options{Limit: 50}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	if idx.useFTS {
		return idx.searchWithFTS(query, opts)
	}
	return idx.searchWithoutFTS(query, opts)
}

// searchWithFTS performs search using FTS5
func (idx *Index) searchWithFTS(query string, opts *Options) ([]*models.Note, error) {
	var conditions []string
	var args []any

	if opts.Folder != "" {
		conditions = append(conditions, "(m.folder = ? OR m.folder LIKE ?)")
		args = append(args, opts.Folder, opts.Folder+"/%")
	}
	if opts.MarkerOnly {
		conditions = append(conditions, "m.marker = 1")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ") + " AND"
	} else {
		whereClause = "WHERE"
	}

	searchQuery := fmt.Sprintf(`
		SELECT f.path, f.name, f.title, m.modified_at, m.word_count, m.marker
		FROM notes_fts f
		JOIN notes_meta m ON f.path = m.path
		%s notes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, whereClause)

	args = append(args, query, opts.Limit)
	return idx.scanNotes(searchQuery, args...)
}

// searchWithoutFTS performs search using LIKE queries on the metadata table
func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]*models.Note, error) {
	var conditions []string
	var args []any

	if opts.Folder != "" {
		conditions = append(conditions, "(folder = ? OR folder LIKE ?)")
		args = append(args, opts.Folder, opts.Folder+"/%")
	}
	if opts.MarkerOnly {
		conditions = append(conditions, "marker = 1")
	}

	searchPattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions = append(conditions, "(name LIKE ? OR title LIKE ?)")
	args = append(args, searchPattern, searchPattern)

	searchQuery := fmt.Sprintf(`
		SELECT path, name, title, modified_at, word_count, marker
		FROM notes_meta
		WHERE %s
		ORDER BY modified_at DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)
	return idx.scanNotes(searchQuery, args...)
}

func (idx *Index) scanNotes(query string, args ...any) ([]*models.Note, error) {
	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(
			&note.Path, &note.Name, &note.Title,
			&note.ModifiedAt, &note.WordCount, &note.Marker,
		); err != nil {
			return nil, err
		}
		results = append(results, note)
	}

	return results, rows.Err()
}

// RemoveNote removes a note from the index
func (idx *Index) RemoveNote(path string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts WHERE path = ?", path); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM notes_meta WHERE path = ?", path); err != nil {
		return err
	}

	return tx.Commit()
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}
