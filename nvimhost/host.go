package nvimhost

import (
	"fmt"
	"sync"

	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/actionmenu/logging"
	"github.com/grovetools/actionmenu/menu"
)

// RPC notification methods this host registers on its channel. Keymaps
// and autocmds on the Neovim side notify back through these.
const (
	methodKey    = "actionmenu_key"
	methodCursor = "actionmenu_cursor"
	methodClosed = "actionmenu_closed"
	methodTick   = "actionmenu_tick"
	methodSelect = "actionmenu_select"
)

// Host implements the menu host contract on top of a Neovim connection.
// All callbacks arrive on the go-client handler goroutine; the menu
// session serializes them itself.
type Host struct {
	v   *nvim.Nvim
	log *logrus.Entry

	mu        sync.Mutex
	nextID    int
	nextToken int
	surfaces  map[int]*surface
	scheduled map[int]func()
	selects   map[int]func(idx int)
}

var _ menu.Host = (*Host)(nil)

// NewHost wraps a Neovim connection and registers the notification
// handlers the surfaces depend on.
func NewHost(v *nvim.Nvim) (*Host, error) {
	h := &Host{
		v:         v,
		log:       logging.NewLogger("nvimhost"),
		surfaces:  make(map[int]*surface),
		scheduled: make(map[int]func()),
		selects:   make(map[int]func(idx int)),
	}

	handlers := map[string]interface{}{
		methodKey:    h.handleKey,
		methodCursor: h.handleCursor,
		methodClosed: h.handleClosed,
		methodTick:   h.handleTick,
		methodSelect: h.handleSelect,
	}
	for method, fn := range handlers {
		if err := v.RegisterHandler(method, fn); err != nil {
			return nil, fmt.Errorf("failed to register %s handler: %w", method, err)
		}
	}
	return h, nil
}

// Nvim exposes the underlying connection.
func (h *Host) Nvim() *nvim.Nvim { return h.v }

// Schedule defers fn to the next tick of Neovim's main loop, after any
// event currently being processed has finished.
func (h *Host) Schedule(fn func()) {
	h.mu.Lock()
	h.nextToken++
	token := h.nextToken
	h.scheduled[token] = fn
	h.mu.Unlock()

	var res interface{}
	err := h.v.ExecLua(
		`local chan, token = ...
vim.schedule(function() vim.rpcnotify(chan, "actionmenu_tick", token) end)`,
		&res, h.v.ChannelID(), token)
	if err != nil {
		h.log.WithError(err).Warn("schedule round-trip failed, running inline")
		h.mu.Lock()
		delete(h.scheduled, token)
		h.mu.Unlock()
		go fn()
	}
}

// CaptureFocus snapshots the current window and returns a restore
// function. The restore is a no-op if the window is gone by then.
func (h *Host) CaptureFocus() func() error {
	prev, err := h.v.CurrentWindow()
	if err != nil {
		h.log.WithError(err).Debug("could not capture current window")
		return func() error { return nil }
	}
	return func() error {
		valid, err := h.v.IsWindowValid(prev)
		if err != nil || !valid {
			return err
		}
		return h.v.SetCurrentWindow(prev)
	}
}

func (h *Host) handleKey(surfID, bindID int64) {
	if s := h.lookup(int(surfID)); s != nil {
		s.fireKey(int(bindID))
	}
}

func (h *Host) handleCursor(surfID int64) {
	if s := h.lookup(int(surfID)); s != nil {
		s.fireCursorMoved()
	}
}

func (h *Host) handleClosed(surfID int64) {
	if s := h.lookup(int(surfID)); s != nil {
		s.fireDetach()
	}
}

func (h *Host) handleTick(token int64) {
	h.mu.Lock()
	fn := h.scheduled[int(token)]
	delete(h.scheduled, int(token))
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (h *Host) handleSelect(token, idx int64) {
	h.mu.Lock()
	fn := h.selects[int(token)]
	delete(h.selects, int(token))
	h.mu.Unlock()
	if fn != nil {
		fn(int(idx))
	}
}

// lookup returns the registered surface, or nil once it has detached.
func (h *Host) lookup(id int) *surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surfaces[id]
}

func (h *Host) unregister(id int) {
	h.mu.Lock()
	delete(h.surfaces, id)
	h.mu.Unlock()
}
