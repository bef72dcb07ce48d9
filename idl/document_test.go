package idl

import "testing"

func TestPositionRoundTrip(t *testing.T) {
	doc := NewDocument("abc\ndefg\nhi\n")
	for off := 0; off < doc.Length(); off++ {
		pos := doc.PositionAtIndex(off)
		if pos == nil {
			t.Fatalf("offset %d: PositionAtIndex returned nil", off)
		}
		back := doc.IndexOfPosition(*pos)
		if back != off {
			t.Errorf("offset %d -> %v -> %d, want round trip", off, *pos, back)
		}
	}
}

func TestApplyEditRange(t *testing.T) {
	doc := NewDocument("a\nb\nc\n")
	doc.ApplyPositionEdit(Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 1}}, "bb")
	if got, want := doc.Text(), "a\nbb\nc\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	wantStarts := []int{0, 2, 5, 7}
	if len(doc.lines.lineStarts) != len(wantStarts) {
		t.Fatalf("lineStarts = %v, want %v", doc.lines.lineStarts, wantStarts)
	}
	for i, w := range wantStarts {
		if doc.lines.lineStarts[i] != w {
			t.Errorf("lineStarts[%d] = %d, want %d", i, doc.lines.lineStarts[i], w)
		}
	}
}

func TestApplyEditOutOfRangeClamps(t *testing.T) {
	doc := NewDocument("abc")
	doc.ApplyEdit(true, -5, 1000, "xyz")
	if got := doc.Text(); got != "xyz" {
		t.Fatalf("got %q, want %q", got, "xyz")
	}
}

func TestIndexOfPositionOutOfRange(t *testing.T) {
	doc := NewDocument("abc\n")
	if off := doc.IndexOfPosition(Position{Line: 5, Character: 0}); off != -1 {
		t.Errorf("line out of range: got %d, want -1", off)
	}
	if off := doc.IndexOfPosition(Position{Line: 0, Character: 100}); off != -1 {
		t.Errorf("character past line end: got %d, want -1", off)
	}
}

func TestCopySpanBounds(t *testing.T) {
	doc := NewDocument("hello")
	if s := doc.CopySpan(1, 3); s == nil || *s != "el" {
		t.Fatalf("got %v, want \"el\"", s)
	}
	if s := doc.CopySpan(-1, 3); s != nil {
		t.Errorf("negative start: got %v, want nil", s)
	}
	if s := doc.CopySpan(0, 100); s != nil {
		t.Errorf("end past length: got %v, want nil", s)
	}
}

func TestRevisionBumpsOnEdit(t *testing.T) {
	doc := NewDocument("a")
	r0 := doc.Revision()
	doc.ApplyEdit(false, 0, 0, "ab")
	if doc.Revision() != r0+1 {
		t.Fatalf("revision did not bump: got %d, want %d", doc.Revision(), r0+1)
	}
}
