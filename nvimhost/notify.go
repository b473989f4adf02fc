package nvimhost

import (
	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/actionmenu/logging"
	"github.com/grovetools/actionmenu/notify"
)

// Notifier surfaces messages through nvim_notify, so they land wherever
// the user's notification plugin routes them.
type Notifier struct {
	v   *nvim.Nvim
	log *logrus.Entry
}

var _ notify.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier on the given connection.
func NewNotifier(v *nvim.Nvim) *Notifier {
	return &Notifier{v: v, log: logging.NewLogger("nvimhost")}
}

// vim.log.levels values.
const (
	nvimLevelInfo  = 2
	nvimLevelWarn  = 3
	nvimLevelError = 4
)

func (n *Notifier) Notify(level notify.Level, message string) {
	nvimLevel := nvimLevelInfo
	switch level {
	case notify.LevelWarn:
		nvimLevel = nvimLevelWarn
	case notify.LevelError:
		nvimLevel = nvimLevelError
	}
	var res interface{}
	if err := n.v.Call("nvim_notify", &res, message, nvimLevel, map[string]interface{}{}); err != nil {
		n.log.WithError(err).WithField("message", message).Warn("nvim_notify failed")
	}
}
