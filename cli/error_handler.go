package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/actionmenu/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create an actionmenu.yml or pass --config.\n")
		return err

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'actionmenu config' to see the resolved configuration.\n")
		return err

	case errors.ErrCodeHostUnavailable:
		fmt.Fprintf(os.Stderr, "❌ No editor host reachable. Run from inside a Neovim terminal ($NVIM set)\n")
		fmt.Fprintf(os.Stderr, "or use 'actionmenu demo' for an embedded instance.\n")
		return err

	case errors.ErrCodeSessionActive:
		fmt.Fprintf(os.Stderr, "❌ A code action menu is already open. Close it before requesting another.\n")
		return err

	case errors.ErrCodeSurfaceCreate:
		if menuErr, ok := err.(*errors.MenuError); ok {
			fmt.Fprintf(os.Stderr, "❌ Could not open the %s menu window\n", menuErr.Details["surface"])
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if menuErr, ok := err.(*errors.MenuError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", menuErr.ToJSON())
			}
		}
		return err
	}
}
