// Package keymap builds the key bindings for actionmenu's terminal
// chooser. Configured keys use Vim notation ("<CR>", "<Esc>", "<C-c>"),
// the same strings the floating menu maps inside Neovim; this package
// translates them to the names Bubble Tea reports.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings the flat chooser responds to.
type KeyMap struct {
	Confirm key.Binding
	Quit    key.Binding
}

// Default returns the bindings used when no configuration overrides
// them.
func Default() KeyMap {
	return New([]string{"<CR>"}, []string{"q", "<Esc>"})
}

// New builds a KeyMap from Vim-notation confirm and quit keys.
func New(confirmKeys, quitKeys []string) KeyMap {
	km := KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(translateAll(confirmKeys)...),
			key.WithHelp(strings.Join(confirmKeys, "/"), "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys(translateAll(quitKeys)...),
			key.WithHelp(strings.Join(quitKeys, "/"), "dismiss"),
		),
	}
	return km
}

func translateAll(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, Translate(k))
	}
	return out
}

// namedKeys maps Vim key notation to Bubble Tea key names.
var namedKeys = map[string]string{
	"<cr>":    "enter",
	"<enter>": "enter",
	"<esc>":   "esc",
	"<tab>":   "tab",
	"<s-tab>": "shift+tab",
	"<space>": " ",
	"<bs>":    "backspace",
	"<up>":    "up",
	"<down>":  "down",
	"<left>":  "left",
	"<right>": "right",
	"<lt>":    "<",
	"<bslash>": "\\",
}

// Translate converts one Vim-notation key to the name Bubble Tea
// reports for it. Plain characters pass through unchanged.
func Translate(k string) string {
	if !strings.HasPrefix(k, "<") || !strings.HasSuffix(k, ">") {
		return k
	}
	lower := strings.ToLower(k)
	if name, ok := namedKeys[lower]; ok {
		return name
	}
	// Modifier notation: <C-x> -> ctrl+x, <M-x>/<A-x> -> alt+x.
	inner := lower[1 : len(lower)-1]
	if rest, ok := strings.CutPrefix(inner, "c-"); ok {
		return "ctrl+" + rest
	}
	if rest, ok := strings.CutPrefix(inner, "m-"); ok {
		return "alt+" + rest
	}
	if rest, ok := strings.CutPrefix(inner, "a-"); ok {
		return "alt+" + rest
	}
	return k
}
