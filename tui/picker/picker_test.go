package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items() []*action.Item {
	return []*action.Item{
		{Action: protocol.CodeAction{Title: "foo\nbar"}},
		{Action: protocol.CodeAction{Title: "plain"}},
	}
}

func TestModelFormatsLabels(t *testing.T) {
	m := NewModel(items(), "Code actions:", func(it *action.Item) string {
		return action.EscapeTitle(it.Title())
	})

	listItems := m.list.Items()
	require.Len(t, listItems, 2)
	assert.Equal(t, `foo\nbar`, listItems[0].(pickerItem).Title())
	assert.Equal(t, "plain", listItems[1].(pickerItem).Title())
}

func TestEnterSelectsHighlightedItem(t *testing.T) {
	source := items()
	m := NewModel(source, "Code actions:", (*action.Item).Title)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "enter must quit the program")
	assert.Same(t, source[0], updated.(Model).Chosen())
}

func TestEscapeDismissesWithoutSelection(t *testing.T) {
	m := NewModel(items(), "Code actions:", (*action.Item).Title)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Nil(t, updated.(Model).Chosen())
}
