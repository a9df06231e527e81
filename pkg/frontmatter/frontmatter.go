package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

// MarkerKey is the frontmatter key that flags a note as its folder's
// explicit index note.
const MarkerKey = "folder-index"

// Frontmatter represents the structured metadata at the beginning of a note
type Frontmatter struct {
	Title       string   `yaml:"title,omitempty"`
	Tags        []string `yaml:"tags,flow"`
	FolderIndex bool     `yaml:"folder-index,omitempty"`
	Created     string   `yaml:"created,omitempty"`
	Modified    string   `yaml:"modified,omitempty"`
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		// No frontmatter found
		return nil, content, nil
	}

	frontmatterStr := matches[1]
	bodyContent := matches[2]

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(frontmatterStr), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	return &fm, bodyContent, nil
}

// Build creates the YAML frontmatter string from a Frontmatter struct
func Build(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")

	if fm.Title != "" {
		sb.WriteString(fmt.Sprintf("title: %s\n", fm.Title))
	}
	if len(fm.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("tags: %s\n", formatYAMLArray(fm.Tags)))
	}
	if fm.FolderIndex {
		sb.WriteString(fmt.Sprintf("%s: true\n", MarkerKey))
	}
	if fm.Created != "" {
		sb.WriteString(fmt.Sprintf("created: %s\n", fm.Created))
	}
	if fm.Modified != "" {
		sb.WriteString(fmt.Sprintf("modified: %s\n", fm.Modified))
	}

	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and body content into a complete document
func BuildContent(fm *Frontmatter, bodyContent string) string {
	frontmatterStr := Build(fm)

	// Ensure proper spacing between frontmatter and body
	if !strings.HasPrefix(bodyContent, "\n") {
		return frontmatterStr + "\n\n" + bodyContent
	}
	return frontmatterStr + "\n" + bodyContent
}

// SetKey rewrites a single frontmatter key in content, preserving every
// other key as-is. Notes without frontmatter gain a minimal block.
func SetKey(content, key string, value any) (string, error) {
	fields, body := splitRaw(content)
	fields[key] = value
	return joinRaw(fields, body)
}

// DeleteKey removes a frontmatter key from content. Removing the last key
// drops the frontmatter block entirely.
func DeleteKey(content, key string) (string, error) {
	fields, body := splitRaw(content)
	if _, ok := fields[key]; !ok {
		return content, nil
	}
	delete(fields, key)
	return joinRaw(fields, body)
}

// LookupBool reads a boolean frontmatter key from content. Absent or
// non-boolean values read as false.
func LookupBool(content, key string) bool {
	fields, _ := splitRaw(content)
	v, ok := fields[key].(bool)
	return ok && v
}

// splitRaw parses the frontmatter block into an untyped map so edits can
// round-trip keys this package does not model.
func splitRaw(content string) (map[string]any, string) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return map[string]any{}, content
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(matches[1]), &fields); err != nil || fields == nil {
		return map[string]any{}, content
	}
	return fields, matches[2]
}

func joinRaw(fields map[string]any, body string) (string, error) {
	if len(fields) == 0 {
		return body, nil
	}

	out, err := yaml.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to build frontmatter: %w", err)
	}

	if !strings.HasPrefix(body, "\n") && body != "" {
		body = "\n" + body
	}
	return "---\n" + string(out) + "---\n" + body, nil
}

// FormatTimestamp formats a time.Time into the standard frontmatter timestamp format
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// ParseTimestamp parses a frontmatter timestamp string into time.Time
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", s)
}

// formatYAMLArray formats a string slice as a YAML flow-style array
func formatYAMLArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	quotedItems := make([]string, len(items))
	for i, item := range items {
		if needsQuoting(item) {
			quotedItems[i] = fmt.Sprintf("%q", item)
		} else {
			quotedItems[i] = item
		}
	}

	return fmt.Sprintf("[%s]", strings.Join(quotedItems, ", "))
}

// needsQuoting checks if a string needs to be quoted in YAML
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, ",:[]{}\"'")
}
