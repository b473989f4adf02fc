// Package protocol defines the subset of Language Server Protocol types
// exchanged with code action providers: positions, ranges, diagnostics,
// code actions and workspace edits.
package protocol

// DocumentURI identifies a text document, e.g. "file:///home/user/main.go".
type DocumentURI string

// Position is a zero-based line/character offset inside a document. The
// meaning of Character depends on the provider's position encoding.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a half-open interval [Start, End) inside a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location is a range inside a specific document.
type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

// TextDocumentIdentifier names the document a request operates on.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// PositionEncodingKind is the character offset encoding a provider uses
// when interpreting Position.Character.
type PositionEncodingKind string

const (
	PositionEncodingUTF8  PositionEncodingKind = "utf-8"
	PositionEncodingUTF16 PositionEncodingKind = "utf-16"
	PositionEncodingUTF32 PositionEncodingKind = "utf-32"
)

// DiagnosticSeverity reports how severe a diagnostic is.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// Diagnostic is a reported problem, such as a compiler error or lint
// finding, overlapping the requested range.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     interface{}        `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}
