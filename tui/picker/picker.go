// Package picker is a flat, single-level chooser for code action items,
// used as the fallback presenter when the menu runs in a plain terminal.
package picker

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/logging"
	"github.com/grovetools/actionmenu/menu"
	"github.com/grovetools/actionmenu/tui"
	"github.com/grovetools/actionmenu/tui/keymap"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

// pickerItem adapts one action item to the bubbles list.
type pickerItem struct {
	item  *action.Item
	label string
}

func (p pickerItem) Title() string { return p.label }
func (p pickerItem) Description() string {
	if p.item.Source != nil {
		return p.item.Source.Name()
	}
	return ""
}
func (p pickerItem) FilterValue() string { return p.label }

// Model is the Bubble Tea model for the flat chooser.
type Model struct {
	list   list.Model
	keys   keymap.KeyMap
	chosen *action.Item
}

// NewModel builds a chooser model with the default key bindings.
func NewModel(items []*action.Item, prompt string, format func(*action.Item) string) Model {
	return NewModelWithKeys(items, prompt, format, keymap.Default())
}

// NewModelWithKeys builds a chooser model from items, a per-item
// formatter and explicit key bindings.
func NewModelWithKeys(items []*action.Item, prompt string, format func(*action.Item) string, keys keymap.KeyMap) Model {
	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, pickerItem{item: it, label: format(it)})
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(listItems, delegate, 48, 16)
	l.Title = prompt
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return Model{list: l, keys: keys}
}

// Chosen returns the selected item, nil when dismissed.
func (m Model) Chosen() *action.Item { return m.chosen }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the list's filter input is active, keys belong to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if sel, ok := m.list.SelectedItem().(pickerItem); ok {
				m.chosen = sel.item
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit), msg.String() == "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return docStyle.Render(m.list.View())
}

// Chooser runs the flat chooser as a standalone Bubble Tea program. It
// satisfies the menu fallback contract.
type Chooser struct {
	keys keymap.KeyMap
	log  *logrus.Entry
}

var _ menu.Chooser = (*Chooser)(nil)

// New creates a Chooser with the default key bindings.
func New() *Chooser {
	return NewWithKeys(keymap.Default())
}

// NewWithKeys creates a Chooser using the given bindings, typically
// built from the configured confirm and quit keys.
func NewWithKeys(keys keymap.KeyMap) *Chooser {
	return &Chooser{keys: keys, log: logging.NewLogger("picker")}
}

// Choose presents the items and invokes onSelect with the chosen item,
// or nil when the user dismisses the chooser.
func (c *Chooser) Choose(items []*action.Item, prompt string, format func(*action.Item) string, onSelect func(*action.Item)) {
	tui.InitializeTUI()

	final, err := tea.NewProgram(NewModelWithKeys(items, prompt, format, c.keys), tea.WithAltScreen()).Run()
	if err != nil {
		c.log.WithError(err).Error("chooser failed")
		onSelect(nil)
		return
	}
	onSelect(final.(Model).Chosen())
}
