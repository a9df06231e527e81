package browser

import (
	"os"
	"os/exec"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/foldernote/pkg/gate"
	"github.com/grovetools/foldernote/pkg/models"
	"github.com/grovetools/foldernote/pkg/resolver"
	"github.com/grovetools/foldernote/pkg/service"
	"github.com/grovetools/foldernote/pkg/vault"
)

// displayNode represents a single line in the hierarchical TUI view.
type displayNode struct {
	folder *models.Folder // Non-nil for folder rows
	note   *models.Note   // Non-nil for note rows
	depth  int
}

// Model is the main model for the vault browser TUI
type Model struct {
	svc      *service.Service
	vault    *vault.Vault
	controls *treeControls
	opener   *editorRequest
	gate     *gate.Gate

	nodes        []*displayNode
	cursor       int
	scrollOffset int
	width        int
	height       int

	keys        KeyMap
	help        help.Model
	filterInput textinput.Model
	filtering   bool
	lastKey     string // For detecting 'gg' and 'z' sequences

	statusMessage string
}

// New creates a new browser model over the service's vault.
func New(svc *service.Service) (Model, error) {
	v, err := svc.Vault()
	if err != nil {
		return Model{}, err
	}

	controls := newTreeControls(v.RootFolder())
	opener := &editorRequest{}

	resolve := func(folderPath string) *models.Note {
		folder, ok := v.Folder(folderPath)
		if !ok {
			return nil
		}
		return resolver.Resolve(folder, svc.Config.Resolution)
	}
	settings := func() *models.Config {
		return svc.Config.Resolution
	}

	ti := textinput.New()
	ti.Placeholder = "Filter notes..."
	ti.CharLimit = 100

	m := Model{
		svc:         svc,
		vault:       v,
		controls:    controls,
		opener:      opener,
		gate:        gate.New(controls, opener, resolve, settings, svc.Logger),
		keys:        keys,
		help:        help.New(),
		filterInput: ti,
	}
	m.rebuildNodes()
	return m, nil
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// editorFinishedMsg is sent when the editor closes
type editorFinishedMsg struct{ err error }

// openInEditor opens a note in the configured editor
func (m Model) openInEditor(notePath string) tea.Cmd {
	editor := m.svc.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}
	cmd := exec.Command(editor, m.vault.AbsPath(notePath))
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// rebuildNodes flattens the vault tree into visible rows, honoring fold
// state, or into a flat filtered note list when a filter is active.
func (m *Model) rebuildNodes() {
	m.nodes = nil

	if m.filtering && m.filterInput.Value() != "" {
		for _, note := range m.filteredNotes() {
			m.nodes = append(m.nodes, &displayNode{note: note})
		}
	} else {
		m.appendFolder(m.vault.RootFolder(), 0)
	}

	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// appendFolder emits rows for a folder's children. The root folder itself
// has no row; its children start at depth 0.
func (m *Model) appendFolder(folder *models.Folder, depth int) {
	for _, sub := range folder.Subfolders {
		m.nodes = append(m.nodes, &displayNode{folder: sub, depth: depth})
		if !m.controls.collapsed[sub.Path] {
			m.appendFolder(sub, depth+1)
		}
	}
	for _, note := range folder.Notes {
		m.nodes = append(m.nodes, &displayNode{note: note, depth: depth})
	}
}

// reload re-reads the vault from disk, keeping fold state for paths that
// still exist.
func (m *Model) reload() error {
	v, err := vault.Load(m.vault.Root())
	if err != nil {
		return err
	}
	m.vault = v

	old := m.controls.collapsed
	m.controls = newTreeControls(v.RootFolder())
	for path := range old {
		if _, ok := m.controls.folders[path]; ok {
			m.controls.collapsed[path] = true
		}
	}

	resolve := func(folderPath string) *models.Note {
		folder, ok := v.Folder(folderPath)
		if !ok {
			return nil
		}
		return resolver.Resolve(folder, m.svc.Config.Resolution)
	}
	settings := func() *models.Config {
		return m.svc.Config.Resolution
	}
	m.gate = gate.New(m.controls, m.opener, resolve, settings, m.svc.Logger)

	m.rebuildNodes()
	return nil
}
