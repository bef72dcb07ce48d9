package idl

import "testing"

func TestDefineVersionCodeAction(t *testing.T) {
	doc := NewDocument("namespace com.foo\nstring Foo\n")
	tree := ParseIdl(doc)

	diags := tree.VersionDiagnostics(doc)
	if len(diags) != 1 || diags[0].Code != CodeDefineVersion {
		t.Fatalf("diags = %+v, want one DEFINE_VERSION", diags)
	}

	r, text, ok := VersionCodeActionEdit(tree, doc)
	if !ok {
		t.Fatal("expected an edit")
	}
	if r.Start != (Position{}) || r.End != (Position{}) {
		t.Errorf("range = %+v, want zero range", r)
	}
	if text != "$version: \"2\"\n\n" {
		t.Errorf("text = %q", text)
	}
}

func TestUpdateVersionCodeAction(t *testing.T) {
	doc := NewDocument("$version: \"1\"\nnamespace com.foo\n")
	tree := ParseIdl(doc)

	diags := tree.VersionDiagnostics(doc)
	if len(diags) != 1 || diags[0].Code != CodeUpdateVersion {
		t.Fatalf("diags = %+v, want one UPDATE_VERSION", diags)
	}

	_, text, ok := VersionCodeActionEdit(tree, doc)
	if !ok {
		t.Fatal("expected an edit")
	}
	if text != "$version: \"2\"" {
		t.Errorf("text = %q", text)
	}
}

func TestCurrentVersionEmitsNoDiagnostic(t *testing.T) {
	doc := NewDocument("$version: \"2\"\nnamespace com.foo\n")
	tree := ParseIdl(doc)
	if diags := tree.VersionDiagnostics(doc); len(diags) != 0 {
		t.Errorf("diags = %+v, want none", diags)
	}
}

func TestShapeAtInsideBlock(t *testing.T) {
	doc := NewDocument("structure Foo {\n  a: String\n}\n")
	tree := ParseIdl(doc)

	var member *MemberDef
	for _, s := range tree.Statements {
		if m, ok := s.(*MemberDef); ok {
			member = m
		}
	}
	if member == nil {
		t.Fatal("expected a member")
	}
	name, ok := tree.ShapeAt(member.NameSpan.Start)
	if !ok || name != "Foo" {
		t.Fatalf("ShapeAt(member) = %q, %v, want Foo, true", name, ok)
	}
}
