package menu

import (
	"context"
	"sync"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/config"
	"github.com/grovetools/actionmenu/dispatch"
	"github.com/grovetools/actionmenu/errors"
	"github.com/grovetools/actionmenu/notify"
	"github.com/sirupsen/logrus"
)

// Session is one selection flow: a primary surface listing groups and
// ungrouped actions, and at most one secondary surface listing the
// members of the group row under the cursor. A session moves from open
// to closed exactly once; Cleanup is idempotent and callable from any
// state.
//
// All state is guarded by mu. Host callbacks arrive on arbitrary
// goroutines and serialize on it, which stands in for the cooperative
// single-threaded event loop of an in-editor implementation.
type Session struct {
	mu sync.Mutex

	cfg      *config.Config
	host     Host
	notifier notify.Notifier
	selector *dispatch.Dispatcher
	log      *logrus.Entry

	partitioned *action.Partitioned
	groups      []*action.Group

	// activeGroup is the group whose members the secondary surface
	// currently shows, nil when no secondary surface is open.
	activeGroup *action.Group

	primary   surfaceState
	secondary surfaceState

	restoreFocus func() error
	closed       bool

	// onClose releases the session slot in the manager. Called exactly
	// once, from cleanup.
	onClose func()
}

func newSession(cfg *config.Config, host Host, notifier notify.Notifier, selector *dispatch.Dispatcher, partitioned *action.Partitioned, log *logrus.Entry) *Session {
	return &Session{
		cfg:         cfg,
		host:        host,
		notifier:    notifier,
		selector:    selector,
		log:         log,
		partitioned: partitioned,
	}
}

// Open builds and shows the primary surface: one row per group in group
// order, then one row per ungrouped action in aggregation order, with
// display indices assigned contiguously across the combined row set.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New(errors.ErrCodeInternal, "session already closed")
	}

	s.partitioned.AssignPrimaryIndices()
	s.groups = s.partitioned.Groups()

	lines := make([]string, 0, len(s.groups)+len(s.partitioned.Ungrouped))
	for _, g := range s.groups {
		lines = append(lines, action.GroupLabel(g.Name, s.cfg.GroupIcon))
	}
	for _, it := range s.partitioned.Ungrouped {
		lines = append(lines, itemLabel(it))
	}

	geometry := action.MeasureLabels(lines)

	s.restoreFocus = s.host.CaptureFocus()

	surf, err := s.host.CreateSurface(SurfaceOptions{
		Anchor: AnchorCursor,
		Width:  geometry.Width,
		Height: len(lines),
		Border: s.cfg.Border,
	})
	if err != nil {
		s.cleanupLocked()
		return errors.SurfaceCreate("primary", err)
	}

	if err := surf.SetLines(lines); err != nil {
		surf.Detach()
		_ = surf.Destroy()
		s.cleanupLocked()
		return errors.SurfaceCreate("primary", err)
	}

	surf.MapKeys(s.cfg.ConfirmKeys, s.confirmPrimary)
	surf.MapKeys(s.cfg.QuitKeys, s.Quit)
	surf.OnCursorMoved(s.primaryCursorMoved)
	surf.OnDetach(s.primaryDetached)

	s.primary = surfaceState{content: lines, surface: surf, geometry: geometry}

	if err := surf.Focus(); err != nil {
		s.log.WithError(err).Warn("failed to focus primary surface")
	}
	return nil
}

// primaryCursorMoved refreshes the secondary surface on every cursor
// movement within the primary surface: a group row closes any existing
// secondary surface and opens a fresh one for that group; any other row
// closes the secondary surface and opens nothing.
func (s *Session) primaryCursorMoved() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.primary.surface == nil {
		return
	}

	line, err := s.primary.surface.CursorLine()
	if err != nil {
		return
	}

	g := s.groupForLine(line)
	s.closeSecondaryLocked()
	if g != nil {
		s.openSecondaryLocked(g, line)
	}
}

// groupForLine maps a primary row number to the group rendered on it,
// nil for ungrouped rows and out-of-range lines. Group rows occupy
// lines 1..G by construction.
func (s *Session) groupForLine(line int) *action.Group {
	if line < 1 || line > len(s.groups) {
		return nil
	}
	return s.groups[line-1]
}

// ungroupedForLine maps a primary row number to the ungrouped item
// whose display index matches it, nil for group rows.
func (s *Session) ungroupedForLine(line int) *action.Item {
	for _, it := range s.partitioned.Ungrouped {
		if it.Index == line {
			return it
		}
	}
	return nil
}

func (s *Session) openSecondaryLocked(g *action.Group, row int) {
	g.AssignMemberIndices()

	lines := make([]string, 0, len(g.Items))
	for _, it := range g.Items {
		lines = append(lines, itemLabel(it))
	}
	geometry := action.MeasureLabels(lines)

	surf, err := s.host.CreateSurface(SurfaceOptions{
		Anchor: AnchorSurface,
		Parent: s.primary.surface,
		Row:    row,
		Width:  geometry.Width,
		Height: len(lines),
		Border: s.cfg.Border,
	})
	if err != nil {
		s.log.WithError(err).WithField("group", g.Name).Warn("failed to open secondary surface")
		return
	}
	if err := surf.SetLines(lines); err != nil {
		surf.Detach()
		_ = surf.Destroy()
		return
	}

	surf.MapKeys(s.cfg.ConfirmKeys, s.confirmSecondary)
	surf.MapKeys(s.cfg.QuitKeys, s.Quit)

	s.activeGroup = g
	s.secondary = surfaceState{content: lines, surface: surf, geometry: geometry}
}

// closeSecondaryLocked tears down the secondary surface if one is open.
// The state slot is cleared before the surface is detached and
// destroyed, so no callback observing the session mid-teardown can find
// a stale handle and tear it down again.
func (s *Session) closeSecondaryLocked() {
	surf := s.secondary.surface
	s.secondary.clear()
	s.activeGroup = nil
	if surf == nil {
		return
	}
	surf.Detach()
	if err := surf.Destroy(); err != nil {
		s.log.WithError(err).Debug("failed to destroy secondary surface")
	}
}

// confirmPrimary handles the confirm key on the primary surface. With a
// secondary surface open it transfers focus into the submenu instead of
// selecting; on an ungrouped row it selects that row's action.
func (s *Session) confirmPrimary() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	if s.secondary.surface != nil {
		surf := s.secondary.surface
		s.mu.Unlock()
		if err := surf.Focus(); err != nil {
			s.log.WithError(err).Warn("failed to focus secondary surface")
		}
		return
	}

	var item *action.Item
	if s.primary.surface != nil {
		if line, err := s.primary.surface.CursorLine(); err == nil {
			item = s.ungroupedForLine(line)
		}
	}
	s.cleanupLocked()
	s.mu.Unlock()

	if item != nil {
		s.dispatchSelection(item)
	}
}

// confirmSecondary selects the member row under the cursor within the
// group that currently holds navigation focus.
func (s *Session) confirmSecondary() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	var item *action.Item
	if s.activeGroup != nil && s.secondary.surface != nil {
		if line, err := s.secondary.surface.CursorLine(); err == nil {
			for _, it := range s.activeGroup.Items {
				if it.Index == line {
					item = it
					break
				}
			}
		}
	}
	s.cleanupLocked()
	s.mu.Unlock()

	if item != nil {
		s.dispatchSelection(item)
	}
}

// dispatchSelection runs the selection pipeline after the surfaces are
// already torn down. Errors are surfaced by the dispatcher; here they
// are only logged.
func (s *Session) dispatchSelection(item *action.Item) {
	if err := s.selector.Select(context.Background(), item); err != nil {
		s.log.WithError(err).WithField("action", item.Title()).Debug("selection pipeline failed")
	}
}

// Quit dismisses the menu from either surface.
func (s *Session) Quit() {
	s.Cleanup()
}

// primaryDetached handles the primary surface being destroyed by
// anything other than this session (e.g. the user closes the window).
// The primary slot is cleared synchronously; the full cleanup and the
// best-effort focus restoration run on the next host tick, after the
// external teardown has finished unwinding.
func (s *Session) primaryDetached() {
	s.mu.Lock()
	s.primary.clear()
	restore := s.restoreFocus
	s.mu.Unlock()

	s.host.Schedule(func() {
		s.Cleanup()
		if restore != nil {
			if err := restore(); err != nil {
				s.log.WithError(err).Debug("failed to restore focus after detach")
			}
		}
	})
}

// Cleanup tears down both surfaces and discards the partition. It is
// idempotent and safe to call from any state; every step no-ops when
// its target is already gone.
func (s *Session) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
}

func (s *Session) cleanupLocked() {
	s.closeSecondaryLocked()

	surf := s.primary.surface
	s.primary.clear()
	if surf != nil {
		surf.Detach()
		if err := surf.Destroy(); err != nil {
			s.log.WithError(err).Debug("failed to destroy primary surface")
		}
	}

	s.partitioned = nil
	s.groups = nil
	s.activeGroup = nil

	if !s.closed {
		s.closed = true
		if s.onClose != nil {
			s.onClose()
		}
	}
}

// Closed reports whether the session has been cleaned up.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// itemLabel is the single-line visible label of an action row: the
// title with newline runs collapsed, plus the disabled reason when the
// action cannot be applied.
func itemLabel(it *action.Item) string {
	title := action.NormalizeTitle(it.Title())
	if reason := it.Disabled(); reason != "" {
		return title + " (" + reason + ")"
	}
	return title
}
