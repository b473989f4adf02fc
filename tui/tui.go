// Package tui holds shared terminal UI setup for actionmenu tools.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI prepares the terminal environment for TUI components.
// It checks for environment variables that force color output
// (`CLICOLOR_FORCE`, `COLORTERM`) and sets the appropriate lipgloss
// color profile when present, so colors stay consistent in
// non-interactive or CI environments.
func InitializeTUI() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
