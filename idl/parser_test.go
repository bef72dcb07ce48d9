package idl

import "testing"

func TestParseTraitWithKvpBody(t *testing.T) {
	doc := NewDocument("@http(method: \"GET\", uri: \"/\")\noperation Foo {}\n")
	tree := ParseIdl(doc)

	if len(tree.Statements) == 0 {
		t.Fatal("expected at least one statement")
	}
	trait, ok := tree.Statements[0].(*TraitApplication)
	if !ok {
		t.Fatalf("statements[0] = %T, want *TraitApplication", tree.Statements[0])
	}
	if trait.ID != "http" {
		t.Errorf("trait id = %q, want %q", trait.ID, "http")
	}
	kvps, ok := trait.Value.(*Kvps)
	if !ok {
		t.Fatalf("trait value = %T, want *Kvps", trait.Value)
	}
	if len(kvps.Entries) != 2 {
		t.Fatalf("kvps entries = %d, want 2", len(kvps.Entries))
	}
	if kvps.Entries[0].Key != "method" || kvps.Entries[1].Key != "uri" {
		t.Errorf("unexpected kvp keys: %q, %q", kvps.Entries[0].Key, kvps.Entries[1].Key)
	}

	var shapeDef *ShapeDef
	for _, s := range tree.Statements {
		if sd, ok := s.(*ShapeDef); ok {
			shapeDef = sd
			break
		}
	}
	if shapeDef == nil || shapeDef.Name != "Foo" || shapeDef.ShapeType != "operation" {
		t.Fatalf("unexpected shape def: %+v", shapeDef)
	}

	methodOffset := trait.Value.(*Kvps).Entries[0].KeySpan.Start
	if ctx := ContextAt(tree, methodOffset); ctx != CtxTrait {
		t.Errorf("contextAt(method) = %v, want TRAIT", ctx)
	}
}

func TestParseMissingCloseBraceRecovers(t *testing.T) {
	text := "structure Foo {\n  a: String\n"
	doc := NewDocument(text)
	tree := ParseIdl(doc)

	if len(tree.Errors) == 0 {
		t.Fatal("expected at least one error for missing }")
	}

	var sawShapeDef, sawBlock, sawMember bool
	var block *Block
	for _, s := range tree.Statements {
		switch v := s.(type) {
		case *ShapeDef:
			sawShapeDef = true
		case *Block:
			sawBlock = true
			block = v
		case *MemberDef:
			sawMember = true
			if v.Name != "a" || v.Target != "String" {
				t.Errorf("member = %+v, want name=a target=String", v)
			}
		}
	}
	if !sawShapeDef || !sawBlock || !sawMember {
		t.Fatalf("missing expected statement kinds: shapeDef=%v block=%v member=%v", sawShapeDef, sawBlock, sawMember)
	}
	if block.End != doc.Length() {
		t.Errorf("block.End = %d, want document length %d", block.End, doc.Length())
	}
}

func TestParseUnknownTraitStillParses(t *testing.T) {
	doc := NewDocument("@x.y#unknownTrait\nstructure Foo {}\n")
	tree := ParseIdl(doc)

	if len(tree.Errors) != 0 {
		t.Fatalf("expected no parse errors, got %v", tree.Errors)
	}
	trait, ok := tree.Statements[0].(*TraitApplication)
	if !ok {
		t.Fatalf("statements[0] = %T, want *TraitApplication", tree.Statements[0])
	}
	if trait.ID != "x.y#unknownTrait" {
		t.Errorf("trait id = %q, want %q", trait.ID, "x.y#unknownTrait")
	}
	if trait.Value != nil {
		t.Errorf("trait value = %v, want nil", trait.Value)
	}
}

func TestParseTotalityNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"{{{{{{",
		"@@@@@",
		"structure",
		"structure Foo { : : : }",
		"namespace",
		"$version",
		"operation Foo { input := { a: ",
		"enum E { A = , B",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("input %q panicked: %v", in, r)
				}
			}()
			doc := NewDocument(in)
			_ = ParseIdl(doc)
		}()
	}
}

func TestParseOperationInlineIO(t *testing.T) {
	doc := NewDocument("operation Foo {\n  input := {\n    a: String\n  }\n}\n")
	tree := ParseIdl(doc)

	var blocks int
	var inline *InlineMemberDef
	for _, s := range tree.Statements {
		if b, ok := s.(*Block); ok {
			blocks++
			_ = b
		}
		if im, ok := s.(*InlineMemberDef); ok {
			inline = im
		}
	}
	if blocks != 2 {
		t.Fatalf("expected 2 nested blocks, got %d", blocks)
	}
	if inline == nil || inline.Keyword != "input" {
		t.Fatalf("inline member def missing or wrong keyword: %+v", inline)
	}
}

func TestContextAtMemberTarget(t *testing.T) {
	doc := NewDocument("namespace com.foo\nstructure S { a: String }\n")
	tree := ParseIdl(doc)

	var member *MemberDef
	var shapeDef *ShapeDef
	for _, s := range tree.Statements {
		switch v := s.(type) {
		case *MemberDef:
			member = v
		case *ShapeDef:
			shapeDef = v
		}
	}
	if member == nil || shapeDef == nil {
		t.Fatal("expected a member def and shape def")
	}

	if ctx := ContextAt(tree, member.TargetSpan.Start); ctx != CtxMemberTarget {
		t.Errorf("contextAt(target) = %v, want MEMBER_TARGET", ctx)
	}
	if ctx := ContextAt(tree, shapeDef.NameSpan.Start); ctx != CtxShapeDef {
		t.Errorf("contextAt(shapeName) = %v, want SHAPE_DEF", ctx)
	}
}

func TestStatementCoverageBlockBounds(t *testing.T) {
	doc := NewDocument("structure Foo {\n  a: String\n  b: Integer\n}\n")
	tree := ParseIdl(doc)

	var block *Block
	blockIdx := -1
	for i, s := range tree.Statements {
		if b, ok := s.(*Block); ok {
			block = b
			blockIdx = i
			break
		}
	}
	if block == nil {
		t.Fatal("expected a Block statement")
	}
	for i := blockIdx + 1; i <= block.LastStatementIndex; i++ {
		s := tree.Statements[i]
		start, end := s.Span()
		if start < block.Start || end > block.End {
			t.Errorf("member %d span [%d,%d) escapes block [%d,%d)", i, start, end, block.Start, block.End)
		}
	}
}
