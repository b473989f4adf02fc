package nvimhost

import (
	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/menu"
)

// Chooser presents a flat list through vim.ui.select, so the user's
// configured picker plugin (telescope, fzf, the builtin prompt) handles
// the presentation.
type Chooser struct {
	host *Host
}

var _ menu.Chooser = (*Chooser)(nil)

// NewChooser creates a Chooser sharing the host's notification channel.
func NewChooser(h *Host) *Chooser {
	return &Chooser{host: h}
}

// Choose shows the items and calls onSelect with the chosen one, or nil
// when the user dismisses the prompt. The selection callback arrives
// asynchronously over rpc.
func (c *Chooser) Choose(items []*action.Item, prompt string, format func(*action.Item) string, onSelect func(*action.Item)) {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = format(it)
	}

	h := c.host
	h.mu.Lock()
	h.nextToken++
	token := h.nextToken
	h.selects[token] = func(idx int) {
		if idx < 1 || idx > len(items) {
			onSelect(nil)
			return
		}
		onSelect(items[idx-1])
	}
	h.mu.Unlock()

	var res interface{}
	err := h.v.ExecLua(
		`local chan, token, prompt, items = ...
vim.ui.select(items, { prompt = prompt }, function(_, idx)
  vim.rpcnotify(chan, "actionmenu_select", token, idx or -1)
end)`,
		&res, h.v.ChannelID(), token, prompt, labels)
	if err != nil {
		h.log.WithError(err).Error("vim.ui.select failed")
		h.mu.Lock()
		delete(h.selects, token)
		h.mu.Unlock()
		onSelect(nil)
	}
}
