package rename

import (
	"strings"

	"github.com/idl-lang/idlls/idl"
)

// referencesIn walks src's flat statement sequence looking for spans
// that name shapeID: a ShapeDef's own name, a MemberDef target, a Use
// import, an Apply target, or a TraitApplication id.
// This is a linear scan over the already-parsed statement list — no
// parser internals are touched (spec.md §9).
func referencesIn(src Source, shapeID string) []Reference {
	if src.Tree == nil || src.Document == nil {
		return nil
	}

	var out []Reference
	addSpan := func(sp idl.Item) {
		r := src.Document.RangeBetween(sp.Start, sp.End)
		if r != nil {
			out = append(out, Reference{URI: src.URI, Range: *r})
		}
	}
	// addQualifiedSpan narrows sp down to just the bare shape name when the
	// matched text carries a namespace prefix ("com.foo#Bar"), so a rename
	// replaces "Bar" and leaves "com.foo#" untouched.
	addQualifiedSpan := func(sp idl.Item, text string) {
		addSpan(bareNameSpan(sp, text))
	}

	for _, stmt := range src.Tree.Statements {
		switch s := stmt.(type) {
		case *idl.ShapeDef:
			if matchesShapeID(s.Name, shapeID) {
				addSpan(s.NameSpan)
			}
		case *idl.Use:
			if matchesShapeID(s.ShapeID, shapeID) {
				addQualifiedSpan(s.ShapeIDSpan, s.ShapeID)
			}
		case *idl.Apply:
			if matchesShapeID(s.Target, shapeID) {
				addQualifiedSpan(s.TargetSpan, s.Target)
			}
		case *idl.TraitApplication:
			if matchesShapeID(s.ID, shapeID) {
				addQualifiedSpan(s.IDSpan, s.ID)
			}
		case *idl.MemberDef:
			if matchesShapeID(s.Target, shapeID) {
				addQualifiedSpan(s.TargetSpan, s.Target)
			}
		}
	}
	return out
}

// bareNameSpan narrows sp to the trailing shape-name portion of text,
// leaving any "namespace#" prefix outside the span.
func bareNameSpan(sp idl.Item, text string) idl.Item {
	idx := strings.LastIndexByte(text, '#')
	if idx < 0 {
		return sp
	}
	return idl.Item{Start: sp.Start + idx + 1, End: sp.End}
}

// matchesShapeID compares a possibly namespace-qualified id
// (`com.foo#Bar`) against a bare or qualified target, matching on the
// trailing shape name when either side lacks a namespace.
func matchesShapeID(candidate, shapeID string) bool {
	if candidate == shapeID {
		return true
	}
	return bareName(candidate) == bareName(shapeID)
}

func bareName(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '#' {
			return id[i+1:]
		}
	}
	return id
}
