package protocol

import (
	"encoding/json"
	"strings"
)

// CodeActionKind is the hierarchical kind of a code action, e.g.
// "quickfix" or "refactor.extract". Kinds form a dotted hierarchy: a
// filter of "refactor" matches "refactor.extract".
type CodeActionKind string

const (
	KindEmpty                 CodeActionKind = ""
	KindQuickFix              CodeActionKind = "quickfix"
	KindRefactor              CodeActionKind = "refactor"
	KindRefactorExtract       CodeActionKind = "refactor.extract"
	KindRefactorInline        CodeActionKind = "refactor.inline"
	KindRefactorRewrite       CodeActionKind = "refactor.rewrite"
	KindSource                CodeActionKind = "source"
	KindSourceOrganizeImports CodeActionKind = "source.organizeImports"
	KindSourceFixAll          CodeActionKind = "source.fixAll"
)

// Matches reports whether k falls under the filter kind: either an exact
// match or a sub-kind of it ("refactor.extract" matches "refactor").
func (k CodeActionKind) Matches(filter CodeActionKind) bool {
	return k == filter || strings.HasPrefix(string(k), string(filter)+".")
}

// CodeActionTriggerKind records why code actions were requested.
type CodeActionTriggerKind int

const (
	TriggerInvoked   CodeActionTriggerKind = 1
	TriggerAutomatic CodeActionTriggerKind = 2
)

// CodeActionContext carries the diagnostics active at the request
// position and an optional kind filter.
type CodeActionContext struct {
	Diagnostics []Diagnostic           `json:"diagnostics"`
	Only        []CodeActionKind       `json:"only,omitempty"`
	TriggerKind *CodeActionTriggerKind `json:"triggerKind,omitempty"`
}

// CodeActionParams are the parameters of a code action request.
type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Context      CodeActionContext      `json:"context"`
}

// Command is a reference to a provider-side command, identified by name
// and invoked with opaque arguments.
type Command struct {
	Title     string            `json:"title,omitempty"`
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// CodeActionDisabled explains why an action cannot currently be applied.
type CodeActionDisabled struct {
	Reason string `json:"reason"`
}

// CodeAction is one proposed fix or refactoring. Edit and Command are
// independently optional: an action may carry either, both, or (before
// resolution) neither. Group is a non-standard extension used by
// providers that cluster related actions under a named heading.
type CodeAction struct {
	Title       string              `json:"title"`
	Kind        CodeActionKind      `json:"kind,omitempty"`
	Group       string              `json:"group,omitempty"`
	Diagnostics []Diagnostic        `json:"diagnostics,omitempty"`
	IsPreferred bool                `json:"isPreferred,omitempty"`
	Disabled    *CodeActionDisabled `json:"disabled,omitempty"`
	Edit        *WorkspaceEdit      `json:"edit,omitempty"`
	Command     *Command            `json:"command,omitempty"`
	Data        json.RawMessage     `json:"data,omitempty"`
}

// NeedsResolve reports whether the action's edit payload is still
// deferred. Providers may omit the edit from the initial response and
// fill it in on a later resolve round-trip.
func (a *CodeAction) NeedsResolve() bool {
	return a.Edit == nil
}
