// Package rename implements a cross-file rename planner for shape
// identifiers. It is a query-only consumer of idl: it locates
// references by a linear scan over each source's parsed statement
// sequence and never reaches into parser internals (spec.md §9).
package rename

import (
	"context"

	"github.com/pkg/errors"

	"github.com/idl-lang/idlls/idl"
)

// Source is one open document the planner may scan, paired with its
// current parse result.
type Source struct {
	URI      string
	Document *idl.Document
	Tree     *idl.SyntaxTree
}

// Reference is one occurrence of a shape id found while scanning a
// Source.
type Reference struct {
	URI   string
	Range idl.Range
}

// TextEdit is a single replacement within one file.
type TextEdit struct {
	Range   idl.Range
	NewText string
}

// Plan is the result of planning a rename: a map from file URI to the
// edits that must be applied there.
type Plan struct {
	Edits map[string][]TextEdit
}

// FindReferences scans every source for occurrences of shapeID (by
// bare name, matching ShapeDef.Name/MemberDef.Target/Use.ShapeID
// spans) and returns their locations. It takes no context and cannot
// be cancelled: every source is always scanned.
func FindReferences(sources []Source, shapeID string) []Reference {
	var out []Reference
	for _, src := range sources {
		out = append(out, referencesIn(src, shapeID)...)
	}
	return out
}

// Plan computes the edits needed to rename every reference to shapeID
// to newName across sources. It accepts a context and checks it
// between files — not mid-file — per spec.md §5's "cancellable at
// file granularity"; a cancelled plan returns a nil plan and ctx.Err()
// wrapped with errors.Wrap, with no partial edits.
func Plan(ctx context.Context, sources []Source, shapeID, newName string) (*Plan, error) {
	edits := make(map[string][]TextEdit)

	for _, src := range sources {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "rename plan cancelled")
		default:
		}

		refs := referencesIn(src, shapeID)
		if len(refs) == 0 {
			continue
		}
		fileEdits := make([]TextEdit, 0, len(refs))
		for _, ref := range refs {
			fileEdits = append(fileEdits, TextEdit{Range: ref.Range, NewText: newName})
		}
		edits[src.URI] = fileEdits
	}

	if len(edits) == 0 {
		return nil, errors.Errorf("no references to %q found", shapeID)
	}
	return &Plan{Edits: edits}, nil
}
