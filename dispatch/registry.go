// Package dispatch drives the selection pipeline for a chosen code
// action: the optional lazy resolve round-trip, workspace edit
// application, and command handler invocation.
package dispatch

import (
	"context"
	"sync"

	"github.com/grovetools/actionmenu/protocol"
)

// HandlerFunc handles one named provider command. It receives the
// command payload and the request context the action was produced
// under.
type HandlerFunc func(ctx context.Context, cmd *protocol.Command, params protocol.CodeActionParams) error

// Registry maps command names to handlers. Absent entries are no-ops at
// dispatch time.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register installs a handler for a command name, replacing any
// previous handler.
func (r *Registry) Register(name string, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = fn
}

// Lookup returns the handler for a command name, or nil.
func (r *Registry) Lookup(name string) HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}
