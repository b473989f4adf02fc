// Package menu owns the two-tier code action menu: the session state
// machine driving the primary and secondary surfaces, the manager that
// serializes selection flows, and the fallback presentation used when
// no action carries a group label.
package menu

import "github.com/grovetools/actionmenu/action"

// Anchor selects what a surface is positioned relative to.
type Anchor int

const (
	// AnchorCursor anchors the surface at the editor cursor.
	AnchorCursor Anchor = iota
	// AnchorSurface anchors the surface to a row of a parent surface.
	AnchorSurface
)

// SurfaceOptions describes a surface to create.
type SurfaceOptions struct {
	Anchor Anchor
	// Parent is the surface Row is relative to. Required for
	// AnchorSurface.
	Parent Surface
	// Row is the 1-based parent row the surface anchors to.
	Row    int
	Width  int
	Height int
	Border string
}

// Surface is one interactive floating panel with its own content, key
// bindings and lifecycle.
//
// Teardown is two-phase: Detach releases the surface's callbacks and
// state handles, Destroy releases the underlying resource. Detach must
// run strictly before Destroy on every teardown path. A surface whose
// Detach has run never fires its cursor-moved or detach callbacks
// again, which is what makes teardown safe against callbacks delivered
// mid-destroy.
type Surface interface {
	// SetLines replaces the surface's visible content, one item per line.
	SetLines(lines []string) error

	// CursorLine returns the 1-based content line under the cursor.
	CursorLine() (int, error)

	// MapKeys binds fn to each of the given key identifiers, scoped to
	// this surface only.
	MapKeys(keys []string, fn func()) error

	// OnCursorMoved registers the callback fired after every cursor
	// movement within the surface.
	OnCursorMoved(fn func())

	// OnDetach registers the callback fired when the surface is
	// destroyed by any means other than Destroy (e.g. the user closes
	// the window out from under the menu).
	OnDetach(fn func())

	// Focus moves input focus to this surface.
	Focus() error

	// Detach unhooks all callbacks and key bindings. First phase of
	// teardown; idempotent.
	Detach()

	// Destroy releases the underlying surface resource. Must only be
	// called after Detach.
	Destroy() error
}

// Host provides surface creation and scheduling on top of a concrete
// editor or UI runtime.
type Host interface {
	// CreateSurface creates and shows a new floating surface.
	CreateSurface(opts SurfaceOptions) (Surface, error)

	// Schedule runs fn on the host's event loop at the next tick.
	Schedule(fn func())

	// CaptureFocus snapshots the currently focused window and returns a
	// function restoring it. The restore is best-effort.
	CaptureFocus() func() error
}

// surfaceState is the per-surface slot of a session: rendered content,
// the surface handle and its geometry. clear resets the triple without
// touching the surface itself; the surface is expected to be already
// detached or destroyed by the caller.
type surfaceState struct {
	content  []string
	surface  Surface
	geometry action.Geometry
}

func (s *surfaceState) clear() {
	s.content = nil
	s.surface = nil
	s.geometry = action.Geometry{}
}
