package nvimhost

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neovim/go-client/nvim"

	"github.com/grovetools/actionmenu/dispatch"
	"github.com/grovetools/actionmenu/protocol"
)

// Applier applies workspace edits through Neovim's own LSP utilities,
// so position decoding matches what the editor does for every other
// edit.
type Applier struct {
	v *nvim.Nvim
}

var _ dispatch.Applier = (*Applier)(nil)

// NewApplier creates an Applier on the given connection.
func NewApplier(v *nvim.Nvim) *Applier {
	return &Applier{v: v}
}

// ApplyWorkspaceEdit applies the edit using the provider's position
// encoding to interpret the edit's offsets.
func (a *Applier) ApplyWorkspaceEdit(ctx context.Context, edit *protocol.WorkspaceEdit, encoding protocol.PositionEncodingKind) error {
	if edit == nil || edit.IsEmpty() {
		return nil
	}
	payload, err := json.Marshal(edit)
	if err != nil {
		return fmt.Errorf("failed to encode workspace edit: %w", err)
	}

	var res interface{}
	return a.v.ExecLua(
		`local edit, enc = ...
vim.lsp.util.apply_workspace_edit(vim.json.decode(edit), enc)`,
		&res, string(payload), string(encoding))
}
