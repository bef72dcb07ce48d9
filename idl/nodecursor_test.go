package idl

import "testing"

func TestLocateCompletionSlotAtEmptyValue(t *testing.T) {
	result := ParseNode(NewDocument(`{method: "GET", uri: }`))
	obj, ok := result.Value.(*Obj)
	if !ok {
		t.Fatalf("value = %T, want *Obj", result.Value)
	}

	uriEntry := obj.Body.Entries[1]
	if uriEntry.Value != nil {
		t.Fatalf("expected nil value for trailing key, got %+v", uriEntry.Value)
	}

	cursor, ok := Locate(result.Value, uriEntry.KeySpan.End+2)
	if !ok {
		t.Fatal("expected a cursor hit")
	}
	if cursor.AtKey {
		t.Errorf("expected to land on the value slot, not the key, got %+v", cursor)
	}
	if cursor.KeyValue != "uri" {
		t.Errorf("KeyValue = %q, want %q", cursor.KeyValue, "uri")
	}
	if len(cursor.Path) == 0 || cursor.Path[len(cursor.Path)-1].Key != "uri" {
		t.Errorf("path = %+v, want a trailing Edge{Key: \"uri\"}", cursor.Path)
	}
}

func TestLocateDescendsIntoArray(t *testing.T) {
	result := ParseNode(NewDocument(`["a", "b", "c"]`))
	arr, ok := result.Value.(*Arr)
	if !ok {
		t.Fatalf("value = %T, want *Arr", result.Value)
	}
	mid := arr.Elements[1]
	start, _ := mid.Span()

	cursor, ok := Locate(result.Value, start)
	if !ok {
		t.Fatal("expected a cursor hit")
	}
	if len(cursor.Path) != 1 || cursor.Path[0].Index != 1 {
		t.Errorf("path = %+v, want single Edge{Index: 1}", cursor.Path)
	}
}

func TestValueAtPathReAnchors(t *testing.T) {
	result := ParseNode(NewDocument(`{a: {b: "x"}}`))
	path := []Edge{{Key: "a"}, {Key: "b"}}
	v := ValueAtPath(result.Value, path)
	str, ok := v.(*Str)
	if !ok {
		t.Fatalf("value = %T, want *Str", v)
	}
	if str.Value != "x" {
		t.Errorf("value = %q, want %q", str.Value, "x")
	}
}
