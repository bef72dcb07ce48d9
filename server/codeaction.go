package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/idl-lang/idlls/idl"
)

// textDocumentCodeAction serves exactly the two version code actions
// SPEC_FULL.md §6 names: it recomputes the version diagnostic straight
// from the core rather than trusting params.Context.Diagnostics, since
// the core is the sole source of truth for whether $version is
// missing or outdated.
func (s *Server) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	uri := params.TextDocument.URI
	doc := s.workspace.Document(uri)
	tree := s.workspace.Tree(uri)
	if doc == nil || tree == nil {
		return nil, nil
	}

	diags := tree.VersionDiagnostics(doc)
	if len(diags) == 0 {
		return nil, nil
	}

	r, text, ok := idl.VersionCodeActionEdit(tree, doc)
	if !ok {
		return nil, nil
	}

	var title string
	switch diags[0].Code {
	case idl.CodeDefineVersion:
		title = "Define $version"
	case idl.CodeUpdateVersion:
		title = "Update $version"
	default:
		return nil, nil
	}

	kind := protocol.CodeActionKindQuickFix
	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			uri: {{Range: toProtocolRange(r), NewText: text}},
		},
	}

	return []protocol.CodeAction{{
		Title: title,
		Kind:  &kind,
		Edit:  &edit,
	}}, nil
}
