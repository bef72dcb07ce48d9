package rename

import (
	"context"
	"testing"

	"github.com/idl-lang/idlls/idl"
)

func sourceFor(uri, text string) Source {
	doc := idl.NewDocument(text)
	tree := idl.ParseIdl(doc)
	return Source{URI: uri, Document: doc, Tree: tree}
}

func TestFindReferencesAcrossFiles(t *testing.T) {
	a := sourceFor("a.idl", "namespace com.foo\nstructure Foo {}\n")
	b := sourceFor("b.idl", "namespace com.foo\nuse com.foo#Foo\nstructure Bar { f: Foo }\n")

	refs := FindReferences([]Source{a, b}, "Foo")
	if len(refs) != 3 {
		t.Fatalf("got %d references, want 3 (def + use + member target): %+v", len(refs), refs)
	}

	byURI := map[string]int{}
	for _, r := range refs {
		byURI[r.URI]++
	}
	if byURI["a.idl"] != 1 || byURI["b.idl"] != 2 {
		t.Errorf("unexpected distribution: %+v", byURI)
	}
}

func TestPlanProducesEditsPerFile(t *testing.T) {
	a := sourceFor("a.idl", "structure Foo {}\n")
	b := sourceFor("b.idl", "structure Bar { f: Foo }\n")

	plan, err := Plan(context.Background(), []Source{a, b}, "Foo", "Baz")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Edits["a.idl"]) != 1 || len(plan.Edits["b.idl"]) != 1 {
		t.Fatalf("edits = %+v, want one per file", plan.Edits)
	}
	for _, edits := range plan.Edits {
		if edits[0].NewText != "Baz" {
			t.Errorf("edit text = %q, want Baz", edits[0].NewText)
		}
	}
}

func TestPlanCancelledReturnsNoPartialEdits(t *testing.T) {
	a := sourceFor("a.idl", "structure Foo {}\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan, err := Plan(ctx, []Source{a}, "Foo", "Baz")
	if err == nil {
		t.Fatal("expected an error from a pre-cancelled context")
	}
	if plan != nil {
		t.Errorf("expected nil plan on cancellation, got %+v", plan)
	}
}

func TestPlanNoReferencesErrors(t *testing.T) {
	a := sourceFor("a.idl", "structure Foo {}\n")
	_, err := Plan(context.Background(), []Source{a}, "NoSuchShape", "Whatever")
	if err == nil {
		t.Fatal("expected an error when no references are found")
	}
}
