package provider

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/grovetools/actionmenu/protocol"
	"github.com/grovetools/actionmenu/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params() protocol.CodeActionParams {
	return protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/main.rs"},
	}
}

func TestRequestFlattensInProviderOrder(t *testing.T) {
	// The second provider answers first; order must still follow
	// provider iteration order, not completion order.
	a := &testutil.ScriptedProvider{
		ProviderName: "slow",
		Delay:        30 * time.Millisecond,
		Actions: []protocol.CodeAction{
			{Title: "slow-1"}, {Title: "slow-2"},
		},
	}
	b := &testutil.ScriptedProvider{
		ProviderName: "fast",
		Actions:      []protocol.CodeAction{{Title: "fast-1"}},
	}

	items := NewAggregator().Request(context.Background(), []Provider{a, b}, params())

	require.Len(t, items, 3)
	assert.Equal(t, "slow-1", items[0].Action.Title)
	assert.Equal(t, "slow-2", items[1].Action.Title)
	assert.Equal(t, "fast-1", items[2].Action.Title)

	assert.Same(t, a, items[0].Source)
	assert.Same(t, b, items[2].Source)
	assert.Equal(t, protocol.DocumentURI("file:///tmp/main.rs"), items[0].Params.TextDocument.URI)
}

func TestRequestSkipsFailingProvider(t *testing.T) {
	bad := &testutil.ScriptedProvider{
		ProviderName: "broken",
		QueryErr:     fmt.Errorf("connection reset"),
	}
	good := &testutil.ScriptedProvider{
		ProviderName: "ok",
		Actions:      []protocol.CodeAction{{Title: "fix"}},
	}

	items := NewAggregator().Request(context.Background(), []Provider{bad, good}, params())

	require.Len(t, items, 1)
	assert.Equal(t, "fix", items[0].Action.Title)
}

func TestRequestEmptyWhenAllProvidersEmpty(t *testing.T) {
	empty := &testutil.ScriptedProvider{ProviderName: "quiet"}

	items := NewAggregator().Request(context.Background(), []Provider{empty}, params())
	assert.Empty(t, items)
}

func TestRequestKindFilter(t *testing.T) {
	quickfix := &testutil.ScriptedProvider{
		ProviderName: "quickfixer",
		Kinds:        []protocol.CodeActionKind{protocol.KindQuickFix},
		Actions:      []protocol.CodeAction{{Title: "fix"}},
	}
	refactor := &testutil.ScriptedProvider{
		ProviderName: "refactorer",
		Kinds:        []protocol.CodeActionKind{protocol.KindRefactorExtract},
		Actions:      []protocol.CodeAction{{Title: "extract"}},
	}
	undeclared := &testutil.ScriptedProvider{
		ProviderName: "undeclared",
		Actions:      []protocol.CodeAction{{Title: "anything"}},
	}

	p := params()
	p.Context.Only = []protocol.CodeActionKind{protocol.KindRefactor}

	items := NewAggregator().Request(context.Background(),
		[]Provider{quickfix, refactor, undeclared}, p)

	require.Len(t, items, 2)
	assert.Equal(t, "extract", items[0].Action.Title, "sub-kind matches the requested base kind")
	assert.Equal(t, "anything", items[1].Action.Title, "providers without declared kinds are always queried")

	assert.Equal(t, 0, quickfix.QueryCount(), "filtered-out provider is never queried")
}
