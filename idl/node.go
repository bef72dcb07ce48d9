package idl

// Node is the recursive, JSON-like value used for trait arguments,
// metadata, and control statement values (spec.md §3). It is a closed
// sum type: every concrete type below is the only implementation, and
// callers are expected to exhaustively switch on them (spec.md §9).
type Node interface {
	Spanner
	isNode()
}

// Kvp is one key/value pair inside a Kvps. Value is nil when the parser
// saw a key with no value yet (e.g. a trailing "key:" before EOF) — this
// is distinct from an explicit Node.Err value and is what lets
// NodeCursor offer a completion slot at an empty value (spec.md §4.4).
type Kvp struct {
	Item
	Key     string
	KeySpan Item
	Value   Node
}

// Kvps is an ordered sequence of key/value pairs — the body of an Obj or
// a parenthesised trait-application key-value list.
type Kvps struct {
	Item
	Entries []Kvp
}

func (n *Kvps) isNode() {}

// Obj is a brace-delimited node value: `{ k: v, ... }`.
type Obj struct {
	Item
	Body Kvps
}

func (n *Obj) isNode() {}

// Arr is a bracket-delimited ordered sequence of node values.
type Arr struct {
	Item
	Elements []Node
}

func (n *Arr) isNode() {}

// Str is a quoted or bare-identifier string value.
type Str struct {
	Item
	Value  string
	Quoted bool
}

func (n *Str) isNode() {}

// Num is an arbitrary-precision decimal literal, kept as its literal text
// (no float64 rounding) per spec.md §3.
type Num struct {
	Item
	Literal string
}

func (n *Num) isNode() {}

// Ident is a Str without surrounding quotes — a bare shape id, namespace,
// or member name used as a node value.
type Ident struct {
	Item
	Name string
}

func (n *Ident) isNode() {}

// EmptyIdent is the sentinel returned where spec.md requires
// `Ident.EMPTY` (start = end = -1).
func EmptyIdent() Ident {
	return Ident{Item: Item{Start: -1, End: -1}}
}

func (id Ident) IsEmpty() bool {
	return id.Start == -1 && id.End == -1
}

// ErrNode is a first-class malformed node value, distinct from a
// Statement-level parse Err (spec.md §4.2.4): it lets positional queries
// on a malformed sub-tree keep succeeding.
type ErrNode struct {
	Item
	Message string
}

func (n *ErrNode) isNode() {}
