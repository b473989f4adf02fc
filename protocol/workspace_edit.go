package protocol

// TextEdit replaces the text of Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// TextDocumentEdit groups edits to a single versioned document.
type TextDocumentEdit struct {
	TextDocument OptionalVersionedTextDocumentIdentifier `json:"textDocument"`
	Edits        []TextEdit                              `json:"edits"`
}

// OptionalVersionedTextDocumentIdentifier names a document together
// with the version the edits were computed against, when known.
type OptionalVersionedTextDocumentIdentifier struct {
	URI     DocumentURI `json:"uri"`
	Version *int32      `json:"version"`
}

// WorkspaceEdit describes changes to one or more documents. Providers
// populate either Changes (URI keyed) or DocumentChanges (ordered,
// versioned), never both.
type WorkspaceEdit struct {
	Changes         map[DocumentURI][]TextEdit `json:"changes,omitempty"`
	DocumentChanges []TextDocumentEdit         `json:"documentChanges,omitempty"`
}

// IsEmpty reports whether the edit carries no document changes at all.
func (e *WorkspaceEdit) IsEmpty() bool {
	return e == nil || (len(e.Changes) == 0 && len(e.DocumentChanges) == 0)
}
