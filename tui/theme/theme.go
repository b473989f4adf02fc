// Package theme holds the shared palette and styles for actionmenu's
// terminal output. The palette sticks to ANSI colors so it follows the
// user's terminal scheme.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors encapsulates the palette used by a theme. lipgloss.TerminalColor
// allows a mix of adaptive and static colors.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Orange    lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Blue      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
}

// Theme bundles the palette with the commonly reused styles.
type Theme struct {
	Colors Colors
	Muted  lipgloss.Style
	Italic lipgloss.Style
}

// DefaultTheme is the theme used by all actionmenu commands.
var DefaultTheme = New()

// New builds the ANSI terminal theme.
func New() *Theme {
	colors := Colors{
		Green:     lipgloss.Color("2"),
		Yellow:    lipgloss.Color("3"),
		Red:       lipgloss.Color("1"),
		Orange:    lipgloss.Color("208"),
		Cyan:      lipgloss.Color("6"),
		Blue:      lipgloss.Color("4"),
		Violet:    lipgloss.Color("5"),
		MutedText: lipgloss.Color("8"),
	}
	return &Theme{
		Colors: colors,
		Muted:  lipgloss.NewStyle().Foreground(colors.MutedText),
		Italic: lipgloss.NewStyle().Italic(true),
	}
}
