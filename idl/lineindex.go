package idl

import "sort"

// LineIndex maps between byte (UTF-16 unit) offsets and line/character
// positions. lineStarts[0] is always 0; lineStarts[i] for i>0 is one past
// the i-th newline.
type LineIndex struct {
	lineStarts []int
}

// newLineIndex builds a LineIndex over buf, a UTF-16 code unit slice.
func newLineIndex(buf []uint16) *LineIndex {
	starts := []int{0}
	for i, u := range buf {
		if u == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{lineStarts: starts}
}

// LineCount returns the number of lines the index tracks.
func (li *LineIndex) LineCount() int {
	return len(li.lineStarts)
}

// lineStart returns the starting offset of line, or -1 if out of range.
func (li *LineIndex) lineStart(line int) int {
	if line < 0 || line >= len(li.lineStarts) {
		return -1
	}
	return li.lineStarts[line]
}

// lineEnd returns the offset one past the last character of line,
// excluding its terminating newline, given the buffer length.
func (li *LineIndex) lineEnd(line int, bufLen int) int {
	if line < 0 || line >= len(li.lineStarts) {
		return -1
	}
	if line+1 < len(li.lineStarts) {
		end := li.lineStarts[line+1] - 1
		if end > 0 {
			return end
		}
		return 0
	}
	return bufLen
}

// lineOfOffset returns the line containing off via binary search.
func (li *LineIndex) lineOfOffset(off int) int {
	// Largest i such that lineStarts[i] <= off.
	i := sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > off
	})
	return i - 1
}
