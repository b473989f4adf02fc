// Package provider defines the code action provider contract and the
// fan-out aggregator that merges every capable provider's results into
// one ordered item collection.
package provider

import (
	"context"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/protocol"
)

// Provider is an analysis backend capable of answering code action
// queries. Implementations wrap whatever transport reaches the backend;
// the aggregator only sees this interface.
type Provider interface {
	action.Source

	// SupportsCodeActions reports whether the provider answers code
	// action queries at all.
	SupportsCodeActions() bool

	// SupportedKinds lists the action kinds the provider may produce.
	// An empty list means the provider does not declare kinds and is
	// queried regardless of any kind filter.
	SupportedKinds() []protocol.CodeActionKind

	// CodeActions returns the provider's proposed actions for the given
	// document range and diagnostic context.
	CodeActions(ctx context.Context, params protocol.CodeActionParams) ([]protocol.CodeAction, error)
}

// capable reports whether p should receive a query with the given kind
// filter: it must support code actions, and when both the request and
// the provider declare kinds, at least one declared kind must fall
// under a requested one.
func capable(p Provider, only []protocol.CodeActionKind) bool {
	if !p.SupportsCodeActions() {
		return false
	}
	declared := p.SupportedKinds()
	if len(only) == 0 || len(declared) == 0 {
		return true
	}
	for _, want := range only {
		for _, have := range declared {
			if have.Matches(want) {
				return true
			}
		}
	}
	return false
}
