package idl

import "testing"

func TestIdentifierSymmetry(t *testing.T) {
	doc := NewDocument("namespace com.foo.bar\n")
	start := len("namespace ")
	end := start + len("com.foo.bar")

	for p := start; p < end; p++ {
		res, ok := IdentifierAt(doc, p)
		if !ok {
			t.Fatalf("offset %d: expected identifier hit", p)
		}
		if res.Text != "com.foo.bar" {
			t.Errorf("offset %d: got %q, want %q", p, res.Text, "com.foo.bar")
		}
		if res.Span.Start != start || res.Span.End != end {
			t.Errorf("offset %d: span = %+v, want [%d,%d)", p, res.Span, start, end)
		}
	}
}

func TestIdentifierKindMember(t *testing.T) {
	doc := NewDocument("with [$member]\n")
	res, ok := IdentifierAt(doc, 7)
	if !ok {
		t.Fatal("expected identifier hit")
	}
	if res.Kind != IdentMember {
		t.Errorf("kind = %v, want MEMBER", res.Kind)
	}
}

func TestIdentifierAtNonIdentCharReturnsFalse(t *testing.T) {
	doc := NewDocument("a b")
	if _, ok := IdentifierAt(doc, 1); ok {
		t.Error("expected miss on whitespace offset")
	}
}
