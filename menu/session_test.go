package menu

import (
	"context"
	"testing"

	"github.com/grovetools/actionmenu/protocol"
	"github.com/grovetools/actionmenu/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStandardMenu(t *testing.T, f *fixture) *fakeSurface {
	t.Helper()

	p := scripted(
		protocol.CodeAction{Title: "Fix A", Group: "Clippy", Edit: editFor("file:///a")},
		protocol.CodeAction{Title: "Fix B", Group: "Clippy", Edit: editFor("file:///b")},
		protocol.CodeAction{Title: "Add import", Edit: editFor("file:///c")},
	)
	require.NoError(t, f.manager.Request(context.Background(), []provider.Provider{p}, testParams()))

	primary := f.host.surface(0)
	require.NotNil(t, primary, "primary surface must be created")
	return primary
}

func TestOpenPrimaryRowsAndIndices(t *testing.T) {
	f := newFixture(false)

	p := scripted(
		protocol.CodeAction{Title: "Fix A", Group: "Clippy"},
		protocol.CodeAction{Title: "Fix B", Group: "Clippy"},
		protocol.CodeAction{Title: "Extract", Group: "Refactor"},
		protocol.CodeAction{Title: "Add import"},
		protocol.CodeAction{Title: "Sort members"},
	)
	require.NoError(t, f.manager.Request(context.Background(), []provider.Provider{p}, testParams()))

	primary := f.host.surface(0)
	require.NotNil(t, primary)
	assert.Equal(t, []string{
		"Clippy >",
		"Refactor >",
		"Add import",
		"Sort members",
	}, primary.lines)

	// Group rows are 1..G, ungrouped rows G+1..G+U.
	session := f.manager.Active()
	require.NotNil(t, session)
	groups := session.partitioned.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Index)
	assert.Equal(t, 2, groups[1].Index)
	assert.Equal(t, 3, session.partitioned.Ungrouped[0].Index)
	assert.Equal(t, 4, session.partitioned.Ungrouped[1].Index)

	// Surface width follows the longest visible label plus padding.
	assert.Equal(t, len("Sort members")+5, primary.opts.Width)
	assert.Equal(t, 4, primary.opts.Height)
	assert.Equal(t, "rounded", primary.opts.Border)
}

func TestEmptyResultEmitsNoticeAndOpensNothing(t *testing.T) {
	f := newFixture(true)

	require.NoError(t, f.manager.Request(context.Background(),
		[]provider.Provider{scripted(), scripted()}, testParams()))

	assert.Equal(t, 0, f.host.surfaceCount())
	assert.False(t, f.chooser.called)
	require.Len(t, f.notifier.Infos(), 1)
	assert.Contains(t, f.notifier.Infos()[0], "No code actions")
	assert.Nil(t, f.manager.Active())
}

func TestNavigateOpensSecondaryForGroupRow(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)

	primary.moveCursor(1)

	secondary := f.host.surface(1)
	require.NotNil(t, secondary, "secondary surface must open for a group row")
	assert.Equal(t, []string{"Fix A", "Fix B"}, secondary.lines)
	assert.Equal(t, AnchorSurface, secondary.opts.Anchor)
	assert.Equal(t, 1, secondary.opts.Row)

	// Member indices are local to the secondary surface.
	session := f.manager.Active()
	clippy := session.partitioned.Group("Clippy")
	assert.Equal(t, 1, clippy.Items[0].Index)
	assert.Equal(t, 2, clippy.Items[1].Index)
}

func TestNavigateBetweenGroupsClosesOldSecondaryFirst(t *testing.T) {
	f := newFixture(false)

	p := scripted(
		protocol.CodeAction{Title: "Fix A", Group: "A"},
		protocol.CodeAction{Title: "Fix B", Group: "B"},
	)
	require.NoError(t, f.manager.Request(context.Background(), []provider.Provider{p}, testParams()))
	primary := f.host.surface(0)

	primary.moveCursor(1)
	secondaryA := f.host.surface(1)
	require.NotNil(t, secondaryA)

	primary.moveCursor(2)
	secondaryB := f.host.surface(2)
	require.NotNil(t, secondaryB)

	assert.True(t, secondaryA.destroyed, "old secondary must be closed")
	assert.False(t, secondaryB.destroyed)

	// A's teardown must complete before B is created.
	events := f.host.eventLog()
	assert.Equal(t, []string{
		"create:1", "focus:1",
		"create:2",
		"detach:2", "destroy:2",
		"create:3",
	}, events)
}

func TestNavigateToUngroupedRowClosesSecondary(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)

	primary.moveCursor(1)
	secondary := f.host.surface(1)
	require.NotNil(t, secondary)

	primary.moveCursor(2) // "Add import", ungrouped
	assert.True(t, secondary.destroyed)
	assert.Equal(t, 2, f.host.surfaceCount(), "no new secondary for an ungrouped row")
}

func TestConfirmPrimaryWithSecondaryOpenTransfersFocus(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)

	primary.moveCursor(1)
	secondary := f.host.surface(1)
	require.NotNil(t, secondary)

	primary.press("<CR>")

	assert.Same(t, secondary, f.host.focused, "confirm drills into the open submenu")
	assert.False(t, secondary.destroyed)
	assert.Equal(t, 0, f.applier.count(), "nothing is selected")
	assert.NotNil(t, f.manager.Active())
}

func TestConfirmUngroupedRowSelectsAndCleansUp(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)

	primary.moveCursor(2) // "Add import"
	primary.press("<CR>")

	assert.Equal(t, 1, f.applier.count())
	assert.True(t, primary.destroyed)
	assert.Nil(t, f.manager.Active())
}

func TestConfirmSecondarySelectsMember(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)

	primary.moveCursor(1)
	secondary := f.host.surface(1)
	require.NotNil(t, secondary)

	secondary.moveCursor(2) // "Fix B"
	secondary.press("<CR>")

	require.Equal(t, 1, f.applier.count())
	assert.Equal(t, editFor("file:///b"), f.applier.applied[0])
	assert.True(t, primary.destroyed)
	assert.True(t, secondary.destroyed)
	assert.Nil(t, f.manager.Active())
}

func TestQuitTearsDownBothSurfacesDetachBeforeDestroy(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)

	primary.moveCursor(1)
	require.NotNil(t, f.host.surface(1))

	primary.press("q")

	events := f.host.eventLog()
	assert.Equal(t, []string{
		"create:1", "focus:1",
		"create:2",
		"detach:2", "destroy:2",
		"detach:1", "destroy:1",
	}, events, "secondary first, and detach strictly before destroy")
	assert.Nil(t, f.manager.Active())
}

func TestCleanupIsIdempotent(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)
	primary.moveCursor(1)

	session := f.manager.Active()
	require.NotNil(t, session)

	session.Cleanup()
	eventsAfterFirst := f.host.eventLog()
	session.Cleanup()

	assert.Equal(t, eventsAfterFirst, f.host.eventLog(), "second cleanup must be a no-op")
	assert.True(t, session.Closed())
	assert.Nil(t, f.manager.Active())
}

func TestCursorMovedAfterCleanupIsIgnored(t *testing.T) {
	f := newFixture(false)
	openStandardMenu(t, f)

	session := f.manager.Active()
	session.Cleanup()

	// A stale cursor event delivered after teardown must not reopen
	// anything. The surface is detached, but call the session handler
	// directly to model the worst case.
	session.primaryCursorMoved()
	assert.Equal(t, 1, f.host.surfaceCount())
}

func TestExternalDetachRunsDeferredCleanupAndRestoresFocus(t *testing.T) {
	f := newFixture(false)
	primary := openStandardMenu(t, f)

	primary.moveCursor(1)
	secondary := f.host.surface(1)
	require.NotNil(t, secondary)

	primary.closeExternally()

	assert.Equal(t, 1, f.host.scheduled, "cleanup is deferred to the next tick")
	assert.True(t, secondary.destroyed, "secondary is still torn down")
	assert.False(t, primary.detached, "primary was already gone; its slot was cleared, not re-destroyed")
	assert.Equal(t, 1, f.host.restoreCalls, "previous focus is restored best-effort")
	assert.Nil(t, f.manager.Active())
}

func TestExternalDetachFocusRestoreFailureIsSwallowed(t *testing.T) {
	f := newFixture(false)
	f.host.restoreErr = assert.AnError
	primary := openStandardMenu(t, f)

	primary.closeExternally()

	assert.Equal(t, 1, f.host.restoreCalls)
	assert.Empty(t, f.notifier.Errors(), "focus restore failure is never surfaced")
	assert.Nil(t, f.manager.Active())
}

func TestNewlineTitlesRenderAsSingleLines(t *testing.T) {
	f := newFixture(false)

	p := scripted(
		protocol.CodeAction{Title: "foo\nbar\rbaz", Group: "Lints"},
		protocol.CodeAction{Title: "top\r\nlevel"},
	)
	require.NoError(t, f.manager.Request(context.Background(), []provider.Provider{p}, testParams()))

	primary := f.host.surface(0)
	assert.Equal(t, []string{"Lints >", "top level"}, primary.lines)

	primary.moveCursor(1)
	secondary := f.host.surface(1)
	require.NotNil(t, secondary)
	assert.Equal(t, []string{"foo bar baz"}, secondary.lines)
}

func TestDisabledActionRendersReason(t *testing.T) {
	f := newFixture(false)

	p := scripted(
		protocol.CodeAction{
			Title:    "Extract function",
			Group:    "Refactor",
			Disabled: &protocol.CodeActionDisabled{Reason: "selection is empty"},
		},
	)
	require.NoError(t, f.manager.Request(context.Background(), []provider.Provider{p}, testParams()))

	primary := f.host.surface(0)
	primary.moveCursor(1)
	secondary := f.host.surface(1)
	require.NotNil(t, secondary)
	assert.Equal(t, []string{"Extract function (selection is empty)"}, secondary.lines)
}

func TestEndToEndGroupedScenario(t *testing.T) {
	f := newFixture(false)

	p := scripted(
		protocol.CodeAction{Title: "Fix A", Group: "Clippy", Edit: editFor("file:///a")},
		protocol.CodeAction{Title: "Fix B", Group: "Clippy", Edit: editFor("file:///b")},
		protocol.CodeAction{Title: "Add import", Edit: editFor("file:///c")},
	)
	require.NoError(t, f.manager.Request(context.Background(), []provider.Provider{p}, testParams()))

	primary := f.host.surface(0)
	require.NotNil(t, primary)
	assert.Equal(t, []string{"Clippy >", "Add import"}, primary.lines)

	session := f.manager.Active()
	assert.Equal(t, 1, session.partitioned.Group("Clippy").Index)
	assert.Equal(t, 2, session.partitioned.Ungrouped[0].Index)

	primary.moveCursor(1)
	secondary := f.host.surface(1)
	require.NotNil(t, secondary)
	assert.Equal(t, []string{"Fix A", "Fix B"}, secondary.lines)

	secondary.moveCursor(2)
	secondary.press("<CR>")

	require.Equal(t, 1, f.applier.count())
	assert.Equal(t, editFor("file:///b"), f.applier.applied[0])
	assert.Nil(t, f.manager.Active(), "flow ends in the closed state")
	assert.True(t, primary.destroyed)
	assert.True(t, secondary.destroyed)
}
