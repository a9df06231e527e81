package browser

import (
	"github.com/grovetools/foldernote/pkg/gate"
	"github.com/grovetools/foldernote/pkg/models"
)

// treeControls is the browser's side of the gate contract: it maps folder
// identifiers (vault-relative paths) to live controls backed by the
// browser's fold state.
type treeControls struct {
	folders   map[string]*models.Folder
	collapsed map[string]bool
}

func newTreeControls(root *models.Folder) *treeControls {
	tc := &treeControls{
		folders:   make(map[string]*models.Folder),
		collapsed: make(map[string]bool),
	}
	tc.register(root)
	return tc
}

func (tc *treeControls) register(folder *models.Folder) {
	tc.folders[folder.Path] = folder
	for _, sub := range folder.Subfolders {
		tc.register(sub)
	}
}

// FindFolderControl implements gate.ControlRegistry.
func (tc *treeControls) FindFolderControl(id string) (gate.FolderControl, bool) {
	folder, ok := tc.folders[id]
	if !ok {
		return nil, false
	}
	return &folderControl{folder: folder, controls: tc}, true
}

type folderControl struct {
	folder   *models.Folder
	controls *treeControls
}

func (c *folderControl) FolderPath() string { return c.folder.Path }

func (c *folderControl) Collapsed() bool { return c.controls.collapsed[c.folder.Path] }

func (c *folderControl) SetCollapsed(collapsed bool) {
	if collapsed {
		c.controls.collapsed[c.folder.Path] = true
	} else {
		delete(c.controls.collapsed, c.folder.Path)
	}
}

// editorRequest is the browser's NoteOpener: the gate records the note to
// open and the update loop turns it into an editor exec command.
type editorRequest struct {
	path    string
	pending bool
}

// OpenNote implements gate.NoteOpener.
func (e *editorRequest) OpenNote(path string) error {
	e.path = path
	e.pending = true
	return nil
}

// take consumes a pending open request.
func (e *editorRequest) take() (string, bool) {
	if !e.pending {
		return "", false
	}
	path := e.path
	e.path, e.pending = "", false
	return path, true
}
