// Package gate intercepts folder clicks in a host tree view and decides,
// per click, whether to open the folder's representative note and whether
// the host's own expand/collapse may still run.
//
// The gate owns the toggle decision outright: hosts declare their controls
// through ControlRegistry instead of the gate reaching into host internals,
// and toggle suppression is a short-lived lease the host checks
// synchronously rather than ambient mutable state.
package gate

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/foldernote/pkg/models"
)

// DefaultLeaseTTL bounds how long a toggle suppression stays in force
// after a click. Hosts may deliver their toggle asynchronously relative to
// the gate's handler; anything later than this is a fresh interaction.
const DefaultLeaseTTL = 200 * time.Millisecond

// Click is a single pointer event on a folder control.
type Click struct {
	ControlID string // Host's identifier for the folder control
	OnArrow   bool   // True when the expand-arrow sub-element was hit
}

// FolderControl is a host-side widget representing one folder.
type FolderControl interface {
	FolderPath() string
	Collapsed() bool
	SetCollapsed(collapsed bool)
}

// ControlRegistry is the capability a host exposes for looking up its
// folder controls.
type ControlRegistry interface {
	FindFolderControl(id string) (FolderControl, bool)
}

// NoteOpener performs the open-note effect: focus or replace the active
// view with the note, never a new pane.
type NoteOpener interface {
	OpenNote(path string) error
}

// ResolveFunc resolves a folder path to its representative note, nil when
// there is none.
type ResolveFunc func(folderPath string) *models.Note

// Lease is a suppression grant with an expiry. The zero value is inert.
type Lease struct {
	expiry time.Time
}

// Active reports whether the lease still suppresses toggles at now.
func (l Lease) Active(now time.Time) bool {
	return now.Before(l.expiry)
}

// Result describes what a click produced.
type Result struct {
	Opened           *models.Note // Note opened by the click, nil for none
	ToggleSuppressed bool         // Host must skip its default expand/collapse
}

// Gate handles clicks for one host view.
type Gate struct {
	registry ControlRegistry
	opener   NoteOpener
	resolve  ResolveFunc
	settings func() *models.Config
	logger   *logrus.Logger

	ttl   time.Duration
	now   func() time.Time
	lease Lease
}

// New wires a gate to its host capabilities. settings is re-read on every
// click so edits take effect without rebuilding the gate.
func New(registry ControlRegistry, opener NoteOpener, resolve ResolveFunc, settings func() *models.Config, logger *logrus.Logger) *Gate {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Gate{
		registry: registry,
		opener:   opener,
		resolve:  resolve,
		settings: settings,
		logger:   logger,
		ttl:      DefaultLeaseTTL,
		now:      time.Now,
	}
}

// SetClock overrides the gate's time source. Tests use this to control
// lease expiry.
func (g *Gate) SetClock(now func() time.Time) {
	g.now = now
}

// HandleClick processes one click event. Lookup misses and absent notes
// are silent no-ops; HandleClick never fails for a structurally valid
// tree.
func (g *Gate) HandleClick(click Click) Result {
	ctrl, ok := g.registry.FindFolderControl(click.ControlID)
	if !ok {
		g.logger.Debugf("gate: no folder control for %q", click.ControlID)
		return Result{}
	}

	// The arrow always keeps its native toggle, whatever the settings say.
	if click.OnArrow {
		return Result{}
	}

	cfg := g.settings()
	result := Result{}

	if note := g.resolve(ctrl.FolderPath()); note != nil {
		if err := g.opener.OpenNote(note.Path); err != nil {
			g.logger.Debugf("gate: open %q: %v", note.Path, err)
		} else {
			result.Opened = note
		}
	}

	if !cfg.AllowFolderToggle {
		g.lease = Lease{expiry: g.now().Add(g.ttl)}
		result.ToggleSuppressed = true
	}

	return result
}

// ToggleSuppressed lets the host ask, at the moment its own toggle fires,
// whether a recent click suppressed it.
func (g *Gate) ToggleSuppressed() bool {
	return g.lease.Active(g.now())
}
