package menu

import (
	"context"
	"fmt"
	"sync"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/config"
	"github.com/grovetools/actionmenu/dispatch"
	"github.com/grovetools/actionmenu/protocol"
	"github.com/grovetools/actionmenu/testutil"
)

// fakeSurface records every lifecycle operation for assertions.
type fakeSurface struct {
	host *fakeHost
	id   int
	opts SurfaceOptions

	mu          sync.Mutex
	lines       []string
	cursor      int
	keymaps     map[string][]func()
	cursorMoved func()
	onDetach    func()
	detached    bool
	destroyed   bool
}

func (f *fakeSurface) SetLines(lines []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = lines
	if f.cursor == 0 {
		f.cursor = 1
	}
	return nil
}

func (f *fakeSurface) CursorLine() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor, nil
}

func (f *fakeSurface) MapKeys(keys []string, fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		f.keymaps[k] = append(f.keymaps[k], fn)
	}
	return nil
}

func (f *fakeSurface) OnCursorMoved(fn func()) { f.cursorMoved = fn }
func (f *fakeSurface) OnDetach(fn func())      { f.onDetach = fn }

func (f *fakeSurface) Focus() error {
	f.host.record(fmt.Sprintf("focus:%d", f.id))
	f.host.focused = f
	return nil
}

func (f *fakeSurface) Detach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detached {
		return
	}
	f.detached = true
	f.cursorMoved = nil
	f.onDetach = nil
	f.keymaps = map[string][]func(){}
	f.host.record(fmt.Sprintf("detach:%d", f.id))
}

func (f *fakeSurface) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
	f.host.record(fmt.Sprintf("destroy:%d", f.id))
	return nil
}

// moveCursor simulates the user moving the cursor to a line, firing the
// cursor-moved callback like the host would.
func (f *fakeSurface) moveCursor(line int) {
	f.mu.Lock()
	f.cursor = line
	fn := f.cursorMoved
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// press simulates a key press within the surface.
func (f *fakeSurface) press(key string) {
	f.mu.Lock()
	fns := append([]func(){}, f.keymaps[key]...)
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// closeExternally simulates the surface being destroyed by something
// other than the state machine.
func (f *fakeSurface) closeExternally() {
	f.mu.Lock()
	fn := f.onDetach
	f.destroyed = true
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// fakeHost creates fakeSurfaces and records events.
type fakeHost struct {
	mu        sync.Mutex
	surfaces  []*fakeSurface
	events    []string
	focused   *fakeSurface
	scheduled int
	createErr error

	restoreCalls int
	restoreErr   error
}

func newFakeHost() *fakeHost { return &fakeHost{} }

func (h *fakeHost) CreateSurface(opts SurfaceOptions) (Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.createErr != nil {
		return nil, h.createErr
	}
	s := &fakeSurface{
		host:    h,
		id:      len(h.surfaces) + 1,
		opts:    opts,
		keymaps: map[string][]func(){},
	}
	h.surfaces = append(h.surfaces, s)
	h.events = append(h.events, fmt.Sprintf("create:%d", s.id))
	return s, nil
}

func (h *fakeHost) Schedule(fn func()) {
	h.mu.Lock()
	h.scheduled++
	h.mu.Unlock()
	fn()
}

func (h *fakeHost) CaptureFocus() func() error {
	return func() error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.restoreCalls++
		return h.restoreErr
	}
}

func (h *fakeHost) record(ev string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *fakeHost) eventLog() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.events...)
}

func (h *fakeHost) surface(i int) *fakeSurface {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i >= len(h.surfaces) {
		return nil
	}
	return h.surfaces[i]
}

func (h *fakeHost) surfaceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.surfaces)
}

// fakeApplier records applied edits.
type fakeApplier struct {
	mu      sync.Mutex
	applied []*protocol.WorkspaceEdit
}

func (f *fakeApplier) ApplyWorkspaceEdit(ctx context.Context, edit *protocol.WorkspaceEdit, encoding protocol.PositionEncodingKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, edit)
	return nil
}

func (f *fakeApplier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

// fakeChooser captures the fallback presentation.
type fakeChooser struct {
	items    []*action.Item
	prompt   string
	format   func(*action.Item) string
	onSelect func(*action.Item)
	called   bool
}

func (f *fakeChooser) Choose(items []*action.Item, prompt string, format func(*action.Item) string, onSelect func(*action.Item)) {
	f.called = true
	f.items = items
	f.prompt = prompt
	f.format = format
	f.onSelect = onSelect
}

// fixture bundles a manager wired to fakes.
type fixture struct {
	host     *fakeHost
	notifier *testutil.CapturingNotifier
	applier  *fakeApplier
	chooser  *fakeChooser
	manager  *Manager
	cfg      *config.Config
}

func newFixture(withChooser bool) *fixture {
	cfg := config.Default()
	cfg.GroupIcon = " >"
	cfg.QuitKeys = []string{"q"}

	f := &fixture{
		host:     newFakeHost(),
		notifier: &testutil.CapturingNotifier{},
		applier:  &fakeApplier{},
		cfg:      cfg,
	}
	if withChooser {
		f.chooser = &fakeChooser{}
	}

	selector := dispatch.New(f.applier, dispatch.NewRegistry(), f.notifier)
	opts := Options{
		Config:   cfg,
		Host:     f.host,
		Notifier: f.notifier,
		Selector: selector,
	}
	if withChooser {
		opts.Chooser = f.chooser
	}
	f.manager = NewManager(opts)
	return f
}

func editFor(uri string) *protocol.WorkspaceEdit {
	return &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentURI][]protocol.TextEdit{
			protocol.DocumentURI(uri): {{NewText: "x"}},
		},
	}
}

func scripted(actions ...protocol.CodeAction) *testutil.ScriptedProvider {
	return &testutil.ScriptedProvider{Actions: actions}
}

func testParams() protocol.CodeActionParams {
	return protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/main.rs"},
	}
}
