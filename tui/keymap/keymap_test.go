package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateNamedKeys(t *testing.T) {
	assert.Equal(t, "enter", Translate("<CR>"))
	assert.Equal(t, "esc", Translate("<Esc>"))
	assert.Equal(t, " ", Translate("<Space>"))
	assert.Equal(t, "tab", Translate("<Tab>"))
}

func TestTranslateModifiers(t *testing.T) {
	assert.Equal(t, "ctrl+c", Translate("<C-c>"))
	assert.Equal(t, "alt+x", Translate("<M-x>"))
	assert.Equal(t, "alt+x", Translate("<A-x>"))
}

func TestTranslatePassesPlainKeysThrough(t *testing.T) {
	assert.Equal(t, "q", Translate("q"))
	assert.Equal(t, "G", Translate("G"))
}

func TestTranslateUnknownNotationUnchanged(t *testing.T) {
	assert.Equal(t, "<F13>", Translate("<F13>"))
}

func TestNewBuildsBindings(t *testing.T) {
	km := New([]string{"<CR>", "o"}, []string{"q", "<Esc>"})
	assert.Equal(t, []string{"enter", "o"}, km.Confirm.Keys())
	assert.Equal(t, []string{"q", "esc"}, km.Quit.Keys())
}
