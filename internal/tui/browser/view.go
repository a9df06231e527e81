package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/foldernote/pkg/models"
	"github.com/grovetools/foldernote/pkg/resolver"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	repStyle       = lipgloss.NewStyle().Faint(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scrollStyle    = lipgloss.NewStyle().Faint(true)
	emptyTreeStyle = lipgloss.NewStyle().Faint(true)
)

// View renders the browser. The first two lines are the header and the
// filter row; the mouse handler relies on that offset when mapping clicks
// to tree rows.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("foldernote"))
	b.WriteString("\n")
	b.WriteString(m.renderFilterRow())
	b.WriteString("\n")
	b.WriteString(m.renderTree())
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderFilterRow() string {
	if m.filtering {
		return m.filterInput.View()
	}
	return scrollStyle.Render(fmt.Sprintf("%s  (%d notes)", m.vault.Root(), len(m.vault.RootFolder().AllNotes())))
}

func (m Model) renderTree() string {
	if len(m.nodes) == 0 {
		return emptyTreeStyle.Render("No notes found.") + "\n"
	}

	var b strings.Builder

	rows := m.visibleRows()
	start := m.scrollOffset
	end := start + rows
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderNode(m.nodes[i], i == m.cursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderNode(node *displayNode, selected bool) string {
	indent := strings.Repeat("  ", node.depth)

	var line string
	if node.folder != nil {
		arrow := "▾ "
		if m.controls.collapsed[node.folder.Path] {
			arrow = "▸ "
		}
		line = fmt.Sprintf("%s%s%s/", indent, arrow, node.folder.Name)
		if rep := m.resolveFolder(node.folder.Path); rep != nil {
			line += repStyle.Render(fmt.Sprintf("  → %s", rep.Name))
		}
		if selected {
			line = selectedStyle.Render(line)
		}
	} else {
		marker := ""
		if node.note.Marker {
			marker = markerStyle.Render(" *")
		}
		title := node.note.Title
		if title == "" {
			title = node.note.Name
		}
		line = indent + "  " + noteStyle.Render(title) + marker +
			repStyle.Render("  "+formatRelativeTime(node.note.ModifiedAt))
		if selected {
			line = selectedStyle.Render(indent+"  "+title) + marker
		}
	}

	if selected {
		return cursorStyle.Render("▶ ") + line
	}
	return "  " + line
}

func (m Model) renderFooter() string {
	var b strings.Builder

	if m.scrollOffset > 0 || m.scrollOffset+m.visibleRows() < len(m.nodes) {
		end := m.scrollOffset + m.visibleRows()
		if end > len(m.nodes) {
			end = len(m.nodes)
		}
		b.WriteString(scrollStyle.Render(fmt.Sprintf(" (%d-%d of %d)", m.scrollOffset+1, end, len(m.nodes))))
		b.WriteString("\n")
	}

	if m.statusMessage != "" {
		b.WriteString(statusStyle.Render(m.statusMessage))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// resolveFolder annotates folder rows with their representative note.
func (m Model) resolveFolder(path string) *models.Note {
	folder, ok := m.vault.Folder(path)
	if !ok {
		return nil
	}
	return resolver.Resolve(folder, m.svc.Config.Resolution)
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}
