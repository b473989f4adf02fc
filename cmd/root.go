// Package cmd assembles the actionmenu command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/actionmenu/cli"
)

// NewRootCmd builds the root actionmenu command with all subcommands
// attached.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("actionmenu", "Grouped code action menu for Neovim")
	root.Long = `actionmenu presents LSP code actions in a two-tier floating menu:
grouped actions open a submenu next to their group row, ungrouped
actions sit at the top level. When no action carries a group, a flat
chooser is used instead.`

	// Errors are reported once, by the cli error handler in main.
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.AddCommand(NewVersionCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewDemoCmd())

	return root
}
