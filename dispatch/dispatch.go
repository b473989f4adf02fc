package dispatch

import (
	"context"
	stderrors "errors"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/errors"
	"github.com/grovetools/actionmenu/logging"
	"github.com/grovetools/actionmenu/notify"
	"github.com/grovetools/actionmenu/protocol"
	"github.com/sirupsen/logrus"
)

// Applier applies a workspace edit to the underlying documents using
// the given position encoding.
type Applier interface {
	ApplyWorkspaceEdit(ctx context.Context, edit *protocol.WorkspaceEdit, encoding protocol.PositionEncodingKind) error
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(ctx context.Context, edit *protocol.WorkspaceEdit, encoding protocol.PositionEncodingKind) error

func (f ApplierFunc) ApplyWorkspaceEdit(ctx context.Context, edit *protocol.WorkspaceEdit, encoding protocol.PositionEncodingKind) error {
	return f(ctx, edit, encoding)
}

// Dispatcher resolves and applies a selected code action.
type Dispatcher struct {
	applier  Applier
	commands *Registry
	notifier notify.Notifier
	log      *logrus.Entry
}

// New creates a Dispatcher.
func New(applier Applier, commands *Registry, notifier notify.Notifier) *Dispatcher {
	if commands == nil {
		commands = NewRegistry()
	}
	return &Dispatcher{
		applier:  applier,
		commands: commands,
		notifier: notifier,
		log:      logging.NewLogger("dispatch"),
	}
}

// Select runs the selection pipeline for one chosen item:
//
//  1. If the action carries no edit and the provider supports resolve,
//     resolve it first. A resolve failure is surfaced to the user and
//     aborts the pipeline without applying anything.
//  2. Apply the (possibly resolved) action's edit, if any, using the
//     provider's position encoding.
//  3. Invoke the registered handler for the action's command, if any.
//     A command without a registered handler is silently skipped.
func (d *Dispatcher) Select(ctx context.Context, item *action.Item) error {
	if reason := item.Disabled(); reason != "" {
		d.notifier.Notify(notify.LevelInfo, "Code action is disabled: "+reason)
		return nil
	}

	act := item.Action
	if act.NeedsResolve() && item.Source.SupportsResolve() {
		resolved, err := item.Source.ResolveCodeAction(ctx, &act)
		if err != nil {
			menuErr := resolveError(item.Source.Name(), err)
			d.notifier.Notify(notify.LevelError, menuErr.Message)
			return menuErr
		}
		act = *resolved
	}

	if act.Edit != nil {
		if err := d.applier.ApplyWorkspaceEdit(ctx, act.Edit, item.Source.OffsetEncoding()); err != nil {
			menuErr := errors.ApplyFailed(item.Title(), err)
			d.notifier.Notify(notify.LevelError, menuErr.Message)
			return menuErr
		}
	}

	if act.Command != nil {
		handler := d.commands.Lookup(act.Command.Command)
		if handler == nil {
			d.log.WithField("command", act.Command.Command).
				Debug("no handler registered for command, skipping")
			return nil
		}
		if err := handler(ctx, act.Command, item.Params); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "command handler failed").
				WithDetail("command", act.Command.Command)
		}
	}

	return nil
}

// resolveError converts a provider resolve failure into a MenuError,
// preserving the protocol error code and message when present.
func resolveError(providerName string, err error) *errors.MenuError {
	var respErr *protocol.ResponseError
	if stderrors.As(err, &respErr) {
		return errors.ResolveFailed(providerName, respErr.Code, respErr.Message)
	}
	return errors.ResolveFailed(providerName, 0, err.Error())
}
