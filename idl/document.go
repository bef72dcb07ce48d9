package idl

import (
	"unicode/utf16"

	"github.com/sasha-s/go-deadlock"
)

// Document is a mutable, line-indexed text buffer. It is safe for
// concurrent use: applyEdit takes the write lock, every read-only query
// takes the read lock. A Document is single-writer, multi-reader per
// spec.md §5 — callers must still ensure applyEdit happens-before any
// query that depends on it, the lock only prevents torn reads/writes.
type Document struct {
	mu       deadlock.RWMutex
	buf      []uint16
	lines    *LineIndex
	revision uint64
}

// NewDocument creates a Document from initial text.
func NewDocument(text string) *Document {
	buf := utf16.Encode([]rune(text))
	return &Document{
		buf:   buf,
		lines: newLineIndex(buf),
	}
}

// Revision returns the number of edits applied so far. A SyntaxTree
// parsed from the document should be tagged with this value so staleness
// is detectable (spec.md §5 "Ordering").
func (d *Document) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// Length returns the buffer length in UTF-16 code units.
func (d *Document) Length() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.buf)
}

// Text returns a copy of the full document text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(utf16.Decode(d.buf))
}

// ApplyEdit replaces the span [startOff, endOff) with text. When
// hasRange is false the whole buffer is replaced (a "full sync"
// edit). Out-of-range offsets clamp rather than error, per spec.md §4.1.
func (d *Document) ApplyEdit(hasRange bool, startOff, endOff int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	newRunes := utf16.Encode([]rune(text))

	if !hasRange {
		d.buf = newRunes
		d.lines = newLineIndex(d.buf)
		d.revision++
		return
	}

	startOff = clamp(startOff, 0, len(d.buf))
	endOff = clamp(endOff, 0, len(d.buf))
	if endOff < startOff {
		startOff, endOff = endOff, startOff
	}

	next := make([]uint16, 0, startOff+len(newRunes)+(len(d.buf)-endOff))
	next = append(next, d.buf[:startOff]...)
	next = append(next, newRunes...)
	next = append(next, d.buf[endOff:]...)

	d.buf = next
	d.lines = newLineIndex(d.buf)
	d.revision++
}

// ApplyPositionEdit translates a Range to offsets (clamping a line past
// the last line to end-of-buffer) and applies the edit.
func (d *Document) ApplyPositionEdit(r Range, text string) {
	d.mu.Lock()
	start := d.indexOfPositionClampedLocked(r.Start)
	end := d.indexOfPositionClampedLocked(r.End)
	d.mu.Unlock()
	d.ApplyEdit(true, start, end, text)
}

// IndexOfPosition translates pos to an offset, returning -1 when the
// line is out of range or the character would land on or past the next
// line's start (or past buffer end on the last line).
func (d *Document) IndexOfPosition(pos Position) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indexOfPositionLocked(pos)
}

func (d *Document) indexOfPositionLocked(pos Position) int {
	line := int(pos.Line)
	start := d.lines.lineStart(line)
	if start < 0 {
		return -1
	}
	end := d.lines.lineEnd(line, len(d.buf))
	off := start + int(pos.Character)
	if off > end {
		return -1
	}
	return off
}

func (d *Document) indexOfPositionClampedLocked(pos Position) int {
	line := int(pos.Line)
	if line >= d.lines.LineCount() {
		return len(d.buf)
	}
	start := d.lines.lineStart(line)
	end := d.lines.lineEnd(line, len(d.buf))
	off := start + int(pos.Character)
	if off > end {
		return end
	}
	return off
}

// PositionAtIndex returns the line/character position of offset via
// binary search, or nil if offset is out of bounds.
func (d *Document) PositionAtIndex(offset int) *Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if offset < 0 || offset > len(d.buf) {
		return nil
	}
	line := d.lines.lineOfOffset(offset)
	if line < 0 {
		return nil
	}
	start := d.lines.lineStart(line)
	return &Position{Line: uint32(line), Character: uint32(offset - start)}
}

// RangeBetween converts an offset span to a Range. endOff may equal
// Length() for an exclusive end-of-document range.
func (d *Document) RangeBetween(startOff, endOff int) *Range {
	start := d.PositionAtIndex(startOff)
	end := d.PositionAtIndex(endOff)
	if start == nil || end == nil {
		return nil
	}
	return &Range{Start: *start, End: *end}
}

// CopySpan returns a bounds-checked copy of the text between s and e.
func (d *Document) CopySpan(s, e int) *string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if s < 0 || e > len(d.buf) || s > e {
		return nil
	}
	text := string(utf16.Decode(d.buf[s:e]))
	return &text
}

// BorrowSpan returns a zero-copy UTF-16 slice of the buffer between s and
// e. The slice is only valid until the next ApplyEdit.
func (d *Document) BorrowSpan(s, e int) []uint16 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if s < 0 || e > len(d.buf) || s > e {
		return nil
	}
	return d.buf[s:e]
}

// borrowAll returns a zero-copy snapshot reference to the whole buffer,
// for use by the parser, which reads the document but never mutates it.
func (d *Document) borrowAll() []uint16 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
