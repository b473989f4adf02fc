package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/cli"
	"github.com/grovetools/actionmenu/config"
	"github.com/grovetools/actionmenu/dispatch"
	"github.com/grovetools/actionmenu/menu"
	"github.com/grovetools/actionmenu/notify"
	"github.com/grovetools/actionmenu/nvimhost"
	"github.com/grovetools/actionmenu/protocol"
	"github.com/grovetools/actionmenu/provider"
	"github.com/grovetools/actionmenu/tui/keymap"
	"github.com/grovetools/actionmenu/tui/picker"
)

// demoProvider serves a fixed set of actions so the menu can be tried
// without a language server.
type demoProvider struct {
	name    string
	actions []protocol.CodeAction
}

func (p *demoProvider) Name() string                                  { return p.name }
func (p *demoProvider) SupportsCodeActions() bool                     { return true }
func (p *demoProvider) SupportedKinds() []protocol.CodeActionKind     { return nil }
func (p *demoProvider) SupportsResolve() bool                         { return false }
func (p *demoProvider) OffsetEncoding() protocol.PositionEncodingKind { return protocol.PositionEncodingUTF16 }

func (p *demoProvider) CodeActions(ctx context.Context, params protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	return p.actions, nil
}

func (p *demoProvider) ResolveCodeAction(ctx context.Context, a *protocol.CodeAction) (*protocol.CodeAction, error) {
	return a, nil
}

func demoCommand(title string) *protocol.Command {
	arg, _ := json.Marshal(title)
	return &protocol.Command{
		Title:     title,
		Command:   "demo.notify",
		Arguments: []json.RawMessage{arg},
	}
}

func demoProviders() []provider.Provider {
	return []provider.Provider{
		&demoProvider{
			name: "demo-refactor",
			actions: []protocol.CodeAction{
				{Title: "Extract function", Group: "Refactor", Kind: protocol.KindRefactorExtract,
					Command: demoCommand("Extract function")},
				{Title: "Inline variable", Group: "Refactor", Kind: protocol.KindRefactorInline,
					Command: demoCommand("Inline variable")},
				{Title: "Rename symbol", Group: "Refactor",
					Disabled: &protocol.CodeActionDisabled{Reason: "no symbol under cursor"},
					Command:  demoCommand("Rename symbol")},
			},
		},
		&demoProvider{
			name: "demo-lints",
			actions: []protocol.CodeAction{
				{Title: "Fix unused\nimport", Group: "Lints", Kind: protocol.KindQuickFix,
					Command: demoCommand("Fix unused import")},
				{Title: "Organize imports", Kind: protocol.KindSourceOrganizeImports,
					Command: demoCommand("Organize imports")},
			},
		},
	}
}

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Try the menu with built-in demo actions",
		Long: `Opens the code action menu populated by built-in demo providers.

Inside a Neovim terminal (with $NVIM set) the real two-tier floating
menu opens. With --flat the fallback terminal chooser runs instead, no
editor required.

Examples:
  # inside a Neovim :terminal
  actionmenu demo

  # plain terminal, flat chooser
  actionmenu demo --flat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			if flat {
				return runFlatDemo(cmd, cfg)
			}
			return runNvimDemo(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "Use the flat terminal chooser instead of Neovim")
	return cmd
}

// printingNotifier writes notices to the command's output.
type printingNotifier struct {
	cmd *cobra.Command
}

func (n *printingNotifier) Notify(level notify.Level, message string) {
	n.cmd.Printf("[%s] %s\n", level, message)
}

// runFlatDemo drives the fallback chooser directly in the terminal.
func runFlatDemo(cmd *cobra.Command, cfg *config.Config) error {
	notifier := &printingNotifier{cmd: cmd}

	commands := dispatch.NewRegistry()
	commands.Register("demo.notify", func(ctx context.Context, c *protocol.Command, params protocol.CodeActionParams) error {
		notifier.Notify(notify.LevelInfo, "Ran: "+c.Title)
		return nil
	})
	selector := dispatch.New(dispatch.ApplierFunc(func(ctx context.Context, edit *protocol.WorkspaceEdit, encoding protocol.PositionEncodingKind) error {
		payload, err := json.Marshal(edit)
		if err != nil {
			return err
		}
		cmd.Printf("workspace edit (%s): %s\n", encoding, payload)
		return nil
	}), commands, notifier)

	items := provider.NewAggregator().Request(cmd.Context(), demoProviders(), demoParams())
	if len(items) == 0 {
		notifier.Notify(notify.LevelInfo, "No code actions available")
		return nil
	}

	done := make(chan error, 1)
	chooser := picker.NewWithKeys(keymap.New(cfg.ConfirmKeys, cfg.QuitKeys))
	chooser.Choose(items, "Code actions:", func(it *action.Item) string {
		return action.EscapeTitle(it.Title())
	}, func(chosen *action.Item) {
		if chosen == nil {
			done <- nil
			return
		}
		done <- selector.Select(cmd.Context(), chosen)
	})
	return <-done
}

// runNvimDemo opens the real floating menu inside the surrounding
// Neovim instance and waits for the flow to finish.
func runNvimDemo(ctx context.Context, cfg *config.Config) error {
	v, err := nvimhost.Connect()
	if err != nil {
		return err
	}
	defer v.Close()

	host, err := nvimhost.NewHost(v)
	if err != nil {
		return err
	}

	notifier := nvimhost.NewNotifier(v)
	commands := dispatch.NewRegistry()
	commands.Register("demo.notify", func(ctx context.Context, c *protocol.Command, params protocol.CodeActionParams) error {
		notifier.Notify(notify.LevelInfo, "Ran: "+c.Title)
		return nil
	})

	manager := menu.NewManager(menu.Options{
		Config:   cfg,
		Host:     host,
		Notifier: notifier,
		Selector: dispatch.New(nvimhost.NewApplier(v), commands, notifier),
		Chooser:  nvimhost.NewChooser(host),
	})

	if err := manager.Request(ctx, demoProviders(), demoParams()); err != nil {
		return err
	}

	// Block until the user finishes the flow; rpc events arrive on
	// background goroutines.
	deadline := time.Now().Add(5 * time.Minute)
	for manager.Active() != nil {
		if time.Now().After(deadline) {
			return fmt.Errorf("demo timed out waiting for the menu to close")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}

func demoParams() protocol.CodeActionParams {
	trigger := protocol.TriggerInvoked
	return protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///demo"},
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 0},
		},
		Context: protocol.CodeActionContext{
			TriggerKind: &trigger,
		},
	}
}
