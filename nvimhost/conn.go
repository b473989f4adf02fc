// Package nvimhost backs the menu with a running Neovim instance: it
// creates floating windows as surfaces, applies workspace edits through
// the editor's LSP utilities, and routes key presses, cursor movement
// and window lifecycle events back over msgpack-rpc.
package nvimhost

import (
	"os"

	"github.com/neovim/go-client/nvim"

	"github.com/grovetools/actionmenu/errors"
)

// Connect attaches to the Neovim instance named by $NVIM, the socket
// Neovim exports to its child processes.
func Connect() (*nvim.Nvim, error) {
	addr := os.Getenv("NVIM")
	if addr == "" {
		return nil, errors.New(errors.ErrCodeHostUnavailable,
			"NVIM is not set; run from inside a Neovim terminal or use an embedded instance")
	}
	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, errors.HostUnavailable(err)
	}
	return v, nil
}

// StartEmbedded starts a headless child Neovim for demos and tests.
// Extra args are appended after the defaults.
func StartEmbedded(args ...string) (*nvim.Nvim, error) {
	nvimArgs := append([]string{"--embed", "--headless", "--clean"}, args...)
	v, err := nvim.NewChildProcess(nvim.ChildProcessArgs(nvimArgs...))
	if err != nil {
		return nil, errors.HostUnavailable(err)
	}
	return v, nil
}
