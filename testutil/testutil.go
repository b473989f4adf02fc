// Package testutil provides shared fakes for actionmenu tests: scripted
// providers, a capturing notifier, and environment helpers.
package testutil

import (
	"context"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/actionmenu/notify"
	"github.com/grovetools/actionmenu/protocol"
)

// RequireNvim skips the test if no nvim binary is available.
func RequireNvim(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("nvim"); err != nil {
		t.Skip("nvim not available")
	}
}

// ScriptedProvider is a Provider whose responses are scripted up front.
type ScriptedProvider struct {
	ProviderName string
	Actions      []protocol.CodeAction
	QueryErr     error
	Delay        time.Duration

	CanResolve bool
	ResolveFn  func(ctx context.Context, a *protocol.CodeAction) (*protocol.CodeAction, error)

	Kinds    []protocol.CodeActionKind
	Encoding protocol.PositionEncodingKind

	mu           sync.Mutex
	queryCount   int
	resolveCount int
}

func (p *ScriptedProvider) Name() string {
	if p.ProviderName == "" {
		return "scripted"
	}
	return p.ProviderName
}

func (p *ScriptedProvider) SupportsCodeActions() bool { return true }

func (p *ScriptedProvider) SupportedKinds() []protocol.CodeActionKind { return p.Kinds }

func (p *ScriptedProvider) SupportsResolve() bool { return p.CanResolve }

func (p *ScriptedProvider) OffsetEncoding() protocol.PositionEncodingKind {
	if p.Encoding == "" {
		return protocol.PositionEncodingUTF16
	}
	return p.Encoding
}

func (p *ScriptedProvider) CodeActions(ctx context.Context, params protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	p.mu.Lock()
	p.queryCount++
	p.mu.Unlock()

	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	return p.Actions, nil
}

func (p *ScriptedProvider) ResolveCodeAction(ctx context.Context, a *protocol.CodeAction) (*protocol.CodeAction, error) {
	p.mu.Lock()
	p.resolveCount++
	p.mu.Unlock()

	if p.ResolveFn != nil {
		return p.ResolveFn(ctx, a)
	}
	return a, nil
}

// QueryCount returns how many times CodeActions was called.
func (p *ScriptedProvider) QueryCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queryCount
}

// ResolveCount returns how many times ResolveCodeAction was called.
func (p *ScriptedProvider) ResolveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolveCount
}

// Notification is one captured notification.
type Notification struct {
	Level   notify.Level
	Message string
}

// CapturingNotifier records notifications for assertions.
type CapturingNotifier struct {
	mu            sync.Mutex
	Notifications []Notification
}

func (n *CapturingNotifier) Notify(level notify.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notifications = append(n.Notifications, Notification{Level: level, Message: message})
}

// Infos returns the captured info-level messages.
func (n *CapturingNotifier) Infos() []string { return n.byLevel(notify.LevelInfo) }

// Errors returns the captured error-level messages.
func (n *CapturingNotifier) Errors() []string { return n.byLevel(notify.LevelError) }

func (n *CapturingNotifier) byLevel(level notify.Level) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, note := range n.Notifications {
		if note.Level == level {
			out = append(out, note.Message)
		}
	}
	return out
}
