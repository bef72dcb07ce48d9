package idl

// Edge is one step in a path from a Node's root down to the position of
// interest: either descending into an Obj/Kvps by key, or into an Arr
// by index (spec.md §4.4).
type Edge struct {
	Key   string // valid when IsKey
	Index int    // valid when !IsKey
	IsKey bool
}

// NodeCursor holds the path from a node's root to the innermost value
// covering a queried offset, plus that innermost value itself.
type NodeCursor struct {
	Path  []Edge
	Value Node

	// AtKey is true when the offset falls inside a Kvp's key span
	// rather than its value — completion and rename need to know which.
	AtKey    bool
	KeyValue string
}

// Locate walks root looking for the innermost node/kvp-key covering
// off, building the Edge path as it descends (spec.md §4.4 "Path
// construction"). It returns (nil, false) if off falls outside root's
// span entirely.
func Locate(root Node, off Offset) (*NodeCursor, bool) {
	if root == nil {
		return nil, false
	}
	start, end := root.Span()
	if off < start || off > end {
		return nil, false
	}
	return locate(root, off, nil)
}

func locate(n Node, off Offset, path []Edge) (*NodeCursor, bool) {
	switch v := n.(type) {
	case *Obj:
		return locateKvps(&v.Body, off, path)
	case *Kvps:
		return locateKvps(v, off, path)
	case *Arr:
		for i, elem := range v.Elements {
			if elem == nil {
				continue
			}
			s, e := elem.Span()
			if off >= s && off <= e {
				return locate(elem, off, append(path, Edge{Index: i}))
			}
		}
		return &NodeCursor{Path: path, Value: n}, true
	default:
		return &NodeCursor{Path: path, Value: n}, true
	}
}

func locateKvps(kvps *Kvps, off Offset, path []Edge) (*NodeCursor, bool) {
	for _, entry := range kvps.Entries {
		if entry.KeySpan.IsIn(off) || off == entry.KeySpan.End {
			return &NodeCursor{
				Path: append(path, Edge{Key: entry.Key, IsKey: true}),
				Value: kvps, AtKey: true, KeyValue: entry.Key,
			}, true
		}
		if entry.Value == nil {
			continue
		}
		s, e := entry.Value.Span()
		if off >= s && off <= e {
			return locate(entry.Value, off, append(path, Edge{Key: entry.Key}))
		}
	}
	// A trailing "key:" with no value is a completion slot (spec.md
	// §4.4's third rule): point the cursor at that key's value position
	// even though no Node was ever built for it.
	if n := len(kvps.Entries); n > 0 {
		last := kvps.Entries[n-1]
		if last.Value == nil {
			return &NodeCursor{
				Path: append(path, Edge{Key: last.Key}),
				Value: kvps, KeyValue: last.Key,
			}, true
		}
	}
	return &NodeCursor{Path: path, Value: kvps}, true
}

// ValueAtPath re-descends root along path and returns the node it
// points to, or nil if the path no longer resolves (e.g. against a
// node re-parsed after an edit) — used to re-anchor a cursor across
// reparses (spec.md §4.4 "Path stability is not guaranteed").
func ValueAtPath(root Node, path []Edge) Node {
	cur := root
	for _, edge := range path {
		switch v := cur.(type) {
		case *Obj:
			next, ok := kvpValueByKey(&v.Body, edge.Key)
			if !ok {
				return nil
			}
			cur = next
		case *Kvps:
			next, ok := kvpValueByKey(v, edge.Key)
			if !ok {
				return nil
			}
			cur = next
		case *Arr:
			if edge.IsKey || edge.Index < 0 || edge.Index >= len(v.Elements) {
				return nil
			}
			cur = v.Elements[edge.Index]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

func kvpValueByKey(kvps *Kvps, key string) (Node, bool) {
	for _, entry := range kvps.Entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}
