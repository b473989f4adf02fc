// Package action models aggregated code action items and their
// partition into named groups and an ungrouped remainder, plus the pure
// label and geometry helpers the menu renders with.
package action

import (
	"context"

	"github.com/grovetools/actionmenu/protocol"
)

// Source is the originating provider of an item, reduced to what the
// selection pipeline needs after aggregation: identity, the optional
// resolve round-trip and the position encoding its edits use.
type Source interface {
	// Name identifies the provider in logs and error messages.
	Name() string

	// SupportsResolve reports whether the provider can fill in deferred
	// action fields via ResolveCodeAction.
	SupportsResolve() bool

	// ResolveCodeAction fills in the deferred fields of an action the
	// user has committed to. The returned action replaces the original.
	ResolveCodeAction(ctx context.Context, a *protocol.CodeAction) (*protocol.CodeAction, error)

	// OffsetEncoding is the position encoding to use when applying this
	// provider's edits.
	OffsetEncoding() protocol.PositionEncodingKind
}

// Item pairs one proposed action with the request context it was
// produced under. Items are created once during aggregation and owned
// by the partition bucket they land in; surfaces reference them without
// copying.
type Item struct {
	Action protocol.CodeAction
	Source Source
	Params protocol.CodeActionParams

	// Index is the 1-based display index of the row currently rendering
	// this item. It is reassigned every time a surface's content is
	// rebuilt and has no meaning outside that surface.
	Index int
}

// Title returns the item's display title. Command-only actions take the
// command's title when the action itself has none.
func (it *Item) Title() string {
	if it.Action.Title != "" {
		return it.Action.Title
	}
	if it.Action.Command != nil {
		return it.Action.Command.Title
	}
	return ""
}

// Group returns the item's group label, empty when ungrouped.
func (it *Item) Group() string {
	return it.Action.Group
}

// Disabled returns the reason the action cannot be applied, or the
// empty string when it can.
func (it *Item) Disabled() string {
	if it.Action.Disabled != nil {
		return it.Action.Disabled.Reason
	}
	return ""
}
