package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/idl-lang/idlls/idl"
	"github.com/idl-lang/idlls/rename"
)

// FindShapeDef linearly scans statements for the ShapeDef introducing
// shapeID (matched against its bare Name — this module does not
// maintain a namespace-qualified symbol table). It is built entirely
// out of the core's own statement sequence, so it lives in server, not
// idl (SPEC_FULL.md §4 "Supplemented operations").
func FindShapeDef(statements []idl.Statement, shapeID string) (int, bool) {
	name := shapeID
	if idx := lastIndexByte(shapeID, '#'); idx >= 0 {
		name = shapeID[idx+1:]
	}
	for i, stmt := range statements {
		if sd, ok := stmt.(*idl.ShapeDef); ok && sd.Name == name {
			return i, true
		}
	}
	return -1, false
}

func lastIndexByte(s string, b byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	tree := s.workspace.Tree(params.TextDocument.URI)
	doc := s.workspace.Document(params.TextDocument.URI)
	if tree == nil || doc == nil {
		return nil, nil
	}

	pos := toIdlPosition(params.Position)
	off := doc.IndexOfPosition(pos)
	if off < 0 {
		return nil, nil
	}

	name, ok := tree.ShapeAt(off)
	if !ok {
		return nil, nil
	}

	value := "**" + name + "**"
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: value},
	}, nil
}

func (s *Server) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	doc := s.workspace.Document(uri)
	tree := s.workspace.Tree(uri)
	if doc == nil || tree == nil {
		return nil, nil
	}

	off := doc.IndexOfPosition(toIdlPosition(params.Position))
	if off < 0 {
		return nil, nil
	}
	res, ok := idl.IdentifierAt(doc, off)
	if !ok {
		return nil, nil
	}

	for _, candidate := range s.workspace.URIs() {
		candDoc := s.workspace.Document(candidate)
		candTree := s.workspace.Tree(candidate)
		if candDoc == nil || candTree == nil {
			continue
		}
		idx, ok := FindShapeDef(candTree.Statements, res.Text)
		if !ok {
			continue
		}
		sd := candTree.Statements[idx].(*idl.ShapeDef)
		r := candDoc.RangeBetween(sd.NameSpan.Start, sd.NameSpan.End)
		if r == nil {
			continue
		}
		return protocol.Location{URI: candidate, Range: toProtocolRange(*r)}, nil
	}
	return nil, nil
}

func (s *Server) textDocumentReferences(ctx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	doc := s.workspace.Document(uri)
	if doc == nil {
		return nil, nil
	}
	off := doc.IndexOfPosition(toIdlPosition(params.Position))
	if off < 0 {
		return nil, nil
	}
	res, ok := idl.IdentifierAt(doc, off)
	if !ok {
		return nil, nil
	}

	refs := rename.FindReferences(s.sources(), res.Text)
	locs := make([]protocol.Location, 0, len(refs))
	for _, ref := range refs {
		locs = append(locs, protocol.Location{URI: ref.URI, Range: toProtocolRange(ref.Range)})
	}
	return locs, nil
}

func (s *Server) textDocumentRename(ctx *glsp.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	uri := params.TextDocument.URI
	doc := s.workspace.Document(uri)
	if doc == nil {
		return nil, nil
	}
	off := doc.IndexOfPosition(toIdlPosition(params.Position))
	if off < 0 {
		return nil, nil
	}
	res, ok := idl.IdentifierAt(doc, off)
	if !ok {
		return nil, nil
	}

	plan, err := rename.Plan(ctx.Context, s.sources(), res.Text, params.NewName)
	if err != nil || plan == nil {
		return nil, nil
	}

	changes := make(map[protocol.DocumentUri][]protocol.TextEdit, len(plan.Edits))
	for fileURI, edits := range plan.Edits {
		protoEdits := make([]protocol.TextEdit, 0, len(edits))
		for _, e := range edits {
			protoEdits = append(protoEdits, protocol.TextEdit{Range: toProtocolRange(e.Range), NewText: e.NewText})
		}
		changes[fileURI] = protoEdits
	}
	return &protocol.WorkspaceEdit{Changes: changes}, nil
}

// sources snapshots every open document as a rename.Source, the only
// shape the planner is allowed to see — it never reaches into idl
// parser internals (SPEC_FULL.md §9).
func (s *Server) sources() []rename.Source {
	uris := s.workspace.URIs()
	out := make([]rename.Source, 0, len(uris))
	for _, uri := range uris {
		doc := s.workspace.Document(uri)
		tree := s.workspace.Tree(uri)
		if doc == nil || tree == nil {
			continue
		}
		out = append(out, rename.Source{URI: uri, Document: doc, Tree: tree})
	}
	return out
}
