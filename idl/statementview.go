package idl

import "sort"

// StatementView answers "which statement covers this offset" queries
// against a flat SyntaxTree, descending into Block bodies as needed
// (spec.md §4.3). It holds no lock of its own — callers obtain one from
// a snapshot already taken under a Document read lock.
type StatementView struct {
	tree *SyntaxTree
}

// NewStatementView wraps tree for locator queries.
func NewStatementView(tree *SyntaxTree) *StatementView {
	return &StatementView{tree: tree}
}

// topLevelRange returns the [start, end) index range of the whole
// statement sequence, statements inside Blocks included.
func (v *StatementView) topLevelRange() (start, end int) {
	return 0, len(v.tree.Statements)
}

// StatementAt returns the innermost statement whose span contains off,
// descending through nested Blocks (spec.md §4.3 "Innermost match").
// It returns (nil, false) when off falls outside every statement (e.g.
// leading/trailing whitespace or a gap the parser skipped).
func (v *StatementView) StatementAt(off Offset) (Statement, bool) {
	stmts := v.tree.Statements
	idx, ok := findContaining(stmts, 0, len(stmts), off)
	if !ok {
		return nil, false
	}
	return stmts[idx], true
}

// StatementIndexAt is StatementAt but returns the index into
// tree.Statements instead of the value, for callers (like the rename
// planner) that need to re-enter the flat sequence at that point.
func (v *StatementView) StatementIndexAt(off Offset) (int, bool) {
	stmts := v.tree.Statements
	return findContaining(stmts, 0, len(stmts), off)
}

// findContaining binary-searches [lo, hi) of stmts for the statement
// whose span contains off, then descends into it if it's a Block.
func findContaining(stmts []Statement, lo, hi int, off Offset) (int, bool) {
	i := sort.Search(hi-lo, func(i int) bool {
		s, _ := stmts[lo+i].Span()
		return s > off
	}) + lo - 1

	if i < lo || i >= hi {
		return -1, false
	}
	stmt := stmts[i]
	start, end := stmt.Span()
	if off < start || off >= end {
		// off falls in a gap between this statement's start and the
		// next, or past the final statement's end.
		if off == end && end == start {
			return i, true
		}
		// The nearest earlier statement whose span still covers off (a
		// Block or ShapeDef enclosing the gap) is the innermost match.
		for j := i - 1; j >= lo; j-- {
			if s, e := stmts[j].Span(); off >= s && off < e {
				return j, true
			}
		}
		return -1, false
	}

	if blk, isBlock := stmt.(*Block); isBlock {
		innerStart := i + 1
		innerEnd := blk.LastStatementIndex + 1
		if innerEnd <= innerStart {
			return i, true
		}
		if childIdx, ok := findContaining(stmts, innerStart, innerEnd, off); ok {
			return childIdx, true
		}
		return i, true
	}

	return i, true
}

// StatementsInRange returns the index of every statement whose span
// overlaps [start, end), by a linear scan over the whole flat sequence
// (statements inside Blocks included).
func (v *StatementView) StatementsInRange(start, end Offset) []int {
	var out []int
	for i, stmt := range v.tree.Statements {
		s, e := stmt.Span()
		if e > start && s < end {
			out = append(out, i)
		}
	}
	return out
}
