package models

// FallbackStrategy selects a note when a folder has notes but no index
// among them.
type FallbackStrategy string

const (
	// FallbackMostRecent picks the note with the greatest modified timestamp.
	FallbackMostRecent FallbackStrategy = "most-recent"

	// FallbackAlphabetical picks the first note in locale-aware name order.
	FallbackAlphabetical FallbackStrategy = "alphabetical"

	// FallbackNone disables the fallback; resolution yields no note.
	FallbackNone FallbackStrategy = "none"
)

// EmptyFolderStrategy selects a note for a folder that has no direct child
// notes at all.
type EmptyFolderStrategy string

const (
	// EmptyRecentIndexInSubfolders asks each immediate child folder for its
	// own index note and picks the most recently modified one.
	EmptyRecentIndexInSubfolders EmptyFolderStrategy = "recent-index-in-subfolders"

	// EmptyRecentNoteRecursive picks the most recently modified note
	// anywhere in the subtree.
	EmptyRecentNoteRecursive EmptyFolderStrategy = "recent-note-recursive"

	// EmptyNone disables empty-folder resolution entirely.
	EmptyNone EmptyFolderStrategy = "none"
)

// DefaultKeyword is the naming convention an index note follows.
const DefaultKeyword = "index"

// MinKeywordLen is enforced when settings are edited, never during
// resolution: an already-stored shorter keyword is tolerated.
const MinKeywordLen = 3

// Config is the resolution settings record. It is treated as an immutable
// snapshot for the duration of a resolve call.
type Config struct {
	FallbackStrategy    FallbackStrategy    `yaml:"fallback_strategy" mapstructure:"fallback_strategy"`
	EmptyFolderStrategy EmptyFolderStrategy `yaml:"empty_folder_strategy" mapstructure:"empty_folder_strategy"`
	AllowFolderToggle   bool                `yaml:"allow_folder_toggle" mapstructure:"allow_folder_toggle"`
	StrictMatching      bool                `yaml:"strict_matching" mapstructure:"strict_matching"`
	Keyword             string              `yaml:"keyword" mapstructure:"keyword"`
}

// DefaultConfig returns the settings used when nothing is stored. A loaded
// record is merged over these defaults field by field.
func DefaultConfig() *Config {
	return &Config{
		FallbackStrategy:    FallbackNone,
		EmptyFolderStrategy: EmptyNone,
		AllowFolderToggle:   false,
		StrictMatching:      false,
		Keyword:             DefaultKeyword,
	}
}

// Normalize coerces malformed stored values back to their defaults.
// Resolution never fails on a bad settings record.
func (c *Config) Normalize() {
	switch c.FallbackStrategy {
	case FallbackMostRecent, FallbackAlphabetical, FallbackNone:
	default:
		c.FallbackStrategy = FallbackNone
	}
	switch c.EmptyFolderStrategy {
	case EmptyRecentIndexInSubfolders, EmptyRecentNoteRecursive, EmptyNone:
	default:
		c.EmptyFolderStrategy = EmptyNone
	}
	if c.Keyword == "" {
		c.Keyword = DefaultKeyword
	}
}
