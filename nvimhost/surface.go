package nvimhost

import (
	"fmt"
	"sync"

	"github.com/neovim/go-client/nvim"

	"github.com/grovetools/actionmenu/menu"
)

// surface is one floating window plus its scratch buffer. Key presses,
// cursor movement and external closes arrive as rpc notifications
// carrying the surface id; a detached surface is removed from the host
// registry so stale notifications fall on the floor.
type surface struct {
	host *Host
	id   int
	buf  nvim.Buffer
	win  nvim.Window

	mu       sync.Mutex
	detached bool
	binds    []func()
	onCursor func()
	onDetach func()
}

var _ menu.Surface = (*surface)(nil)

// CreateSurface opens a floating window per the given options. Cursor
// anchored surfaces open one row below the cursor; surface anchored
// ones open to the right of the parent's given row.
func (h *Host) CreateSurface(opts menu.SurfaceOptions) (menu.Surface, error) {
	buf, err := h.v.CreateBuffer(false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu buffer: %w", err)
	}
	if err := h.v.SetBufferOption(buf, "bufhidden", "wipe"); err != nil {
		return nil, err
	}

	border := opts.Border
	if border == "" {
		border = "none"
	}
	cfg := map[string]interface{}{
		"width":     opts.Width,
		"height":    opts.Height,
		"style":     "minimal",
		"border":    border,
		"focusable": true,
	}
	switch opts.Anchor {
	case menu.AnchorSurface:
		parent, ok := opts.Parent.(*surface)
		if !ok {
			return nil, fmt.Errorf("parent surface is not an nvim surface")
		}
		parentWidth, err := h.v.WindowWidth(parent.win)
		if err != nil {
			return nil, err
		}
		cfg["relative"] = "win"
		cfg["win"] = int(parent.win)
		cfg["row"] = opts.Row - 1
		cfg["col"] = parentWidth
	default:
		cfg["relative"] = "cursor"
		cfg["row"] = 1
		cfg["col"] = 0
	}

	var win nvim.Window
	if err := h.v.Call("nvim_open_win", &win, buf, false, cfg); err != nil {
		return nil, fmt.Errorf("failed to open floating window: %w", err)
	}
	if err := h.v.SetWindowOption(win, "cursorline", true); err != nil {
		h.log.WithError(err).Debug("could not enable cursorline")
	}

	h.mu.Lock()
	h.nextID++
	s := &surface{host: h, id: h.nextID, buf: buf, win: win}
	h.surfaces[s.id] = s
	h.mu.Unlock()

	if err := s.installAutocmds(); err != nil {
		s.Detach()
		h.v.CloseWindow(win, true)
		return nil, err
	}
	return s, nil
}

// installAutocmds wires cursor movement and external close events for
// this surface into the host's notification channel.
func (s *surface) installAutocmds() error {
	chanID := s.host.v.ChannelID()
	src := fmt.Sprintf(`augroup %s
autocmd!
autocmd CursorMoved <buffer=%d> call rpcnotify(%d, '%s', %d)
autocmd WinClosed %d call rpcnotify(%d, '%s', %d)
augroup END`,
		s.augroup(),
		int(s.buf), chanID, methodCursor, s.id,
		int(s.win), chanID, methodClosed, s.id)
	_, err := s.host.v.Exec(src, false)
	if err != nil {
		return fmt.Errorf("failed to install surface autocmds: %w", err)
	}
	return nil
}

func (s *surface) augroup() string {
	return fmt.Sprintf("ActionmenuSurface%d", s.id)
}

func (s *surface) SetLines(lines []string) error {
	replacement := make([][]byte, len(lines))
	for i, line := range lines {
		replacement[i] = []byte(line)
	}
	if err := s.host.v.SetBufferOption(s.buf, "modifiable", true); err != nil {
		return err
	}
	if err := s.host.v.SetBufferLines(s.buf, 0, -1, false, replacement); err != nil {
		return err
	}
	return s.host.v.SetBufferOption(s.buf, "modifiable", false)
}

func (s *surface) CursorLine() (int, error) {
	pos, err := s.host.v.WindowCursor(s.win)
	if err != nil {
		return 0, err
	}
	return pos[0], nil
}

func (s *surface) MapKeys(keys []string, fn func()) error {
	s.mu.Lock()
	bindID := len(s.binds)
	s.binds = append(s.binds, fn)
	s.mu.Unlock()

	rhs := fmt.Sprintf("<Cmd>call rpcnotify(%d, '%s', %d, %d)<CR>",
		s.host.v.ChannelID(), methodKey, s.id, bindID)
	opts := map[string]bool{"noremap": true, "nowait": true, "silent": true}
	for _, key := range keys {
		if err := s.host.v.SetBufferKeyMap(s.buf, "n", key, rhs, opts); err != nil {
			return fmt.Errorf("failed to map %q: %w", key, err)
		}
	}
	return nil
}

func (s *surface) OnCursorMoved(fn func()) {
	s.mu.Lock()
	s.onCursor = fn
	s.mu.Unlock()
}

func (s *surface) OnDetach(fn func()) {
	s.mu.Lock()
	s.onDetach = fn
	s.mu.Unlock()
}

func (s *surface) Focus() error {
	return s.host.v.SetCurrentWindow(s.win)
}

func (s *surface) Detach() {
	s.mu.Lock()
	if s.detached {
		s.mu.Unlock()
		return
	}
	s.detached = true
	s.onCursor = nil
	s.onDetach = nil
	s.mu.Unlock()

	s.host.unregister(s.id)
	if err := s.host.v.Command("silent! autocmd! " + s.augroup()); err != nil {
		s.host.log.WithError(err).Debug("could not clear surface augroup")
	}
}

func (s *surface) Destroy() error {
	valid, err := s.host.v.IsWindowValid(s.win)
	if err != nil {
		return err
	}
	if !valid {
		return nil
	}
	return s.host.v.CloseWindow(s.win, true)
}

func (s *surface) fireKey(bindID int) {
	s.mu.Lock()
	var fn func()
	if !s.detached && bindID >= 0 && bindID < len(s.binds) {
		fn = s.binds[bindID]
	}
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *surface) fireCursorMoved() {
	s.mu.Lock()
	fn := s.onCursor
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *surface) fireDetach() {
	s.mu.Lock()
	fn := s.onDetach
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
