package idl

// Statement is one entry in the flat, file-ordered statement sequence
// that the parser produces instead of a tree (spec.md §3/§9). Every
// concrete type embeds Item for its span.
type Statement interface {
	Spanner
	isStatement()
}

// Incomplete marks a statement the parser began but could not finish
// because EOF was reached (spec.md §3, the EOF-unwind case).
type Incomplete struct {
	Item
	Message string
}

func (s *Incomplete) isStatement() {}

// Control is a `$key: value` top-of-file directive.
type Control struct {
	Item
	Key      string
	KeySpan  Item
	Value    Node
}

func (s *Control) isStatement() {}

// Metadata is a `metadata "key" = value` statement.
type Metadata struct {
	Item
	Key   string
	Value Node
}

func (s *Metadata) isStatement() {}

// Namespace is a `namespace com.foo` statement.
type Namespace struct {
	Item
	Name     string
	NameSpan Item
}

func (s *Namespace) isStatement() {}

// Use is a `use com.foo#Bar` import statement.
type Use struct {
	Item
	ShapeID     string
	ShapeIDSpan Item
}

func (s *Use) isStatement() {}

// Apply is an `apply Target @trait(...)` statement.
type Apply struct {
	Item
	Target     string
	TargetSpan Item
	TraitID    string
	TraitValue Node
}

func (s *Apply) isStatement() {}

// ShapeDef introduces a top-level shape: `<shapeType> <Name>`. HasBody is
// true when a Block statement immediately follows (possibly after
// ForResource/Mixins).
type ShapeDef struct {
	Item
	ShapeType string
	Name      string
	NameSpan  Item
	HasBody   bool
}

func (s *ShapeDef) isStatement() {}

// ForResource is the optional `for <ident>` clause after a ShapeDef.
type ForResource struct {
	Item
	ResourceID string
}

func (s *ForResource) isStatement() {}

// Mixins is the optional `with [A, B]` clause after a ShapeDef.
type Mixins struct {
	Item
	Names []string
}

func (s *Mixins) isStatement() {}

// TraitApplication is an `@id(...)` or `@id` trait annotation, applying
// to the statement that follows it. Value is nil for a bare trait with
// no parenthesised arguments.
type TraitApplication struct {
	Item
	ID      string
	IDSpan  Item
	Value   Node
}

func (s *TraitApplication) isStatement() {}

// MemberDef is a structural member: `IDENT[: TARGET][= value]`.
// ColonPos is -1 when no colon was seen. Elided `$name` members are
// parsed as ElidedMemberDef, not MemberDef.
type MemberDef struct {
	Item
	Name       string
	NameSpan   Item
	ColonPos   int
	Target     string
	TargetSpan Item
	Value      Node
}

func (s *MemberDef) isStatement() {}

// EnumMemberDef is an enum/intEnum member: `IDENT [= node]`.
type EnumMemberDef struct {
	Item
	Name     string
	NameSpan Item
	Value    Node
}

func (s *EnumMemberDef) isStatement() {}

// ElidedMemberDef is a `$name` member referencing an inherited target.
type ElidedMemberDef struct {
	Item
	Name     string
	NameSpan Item
}

func (s *ElidedMemberDef) isStatement() {}

// InlineMemberDef introduces an inline input/output/errors shape via
// `input := { ... }` inside an operation body. A Block statement
// immediately follows, exactly as for a ShapeDef.
type InlineMemberDef struct {
	Item
	Keyword string // "input", "output", or an error member name
}

func (s *InlineMemberDef) isStatement() {}

// NodeMemberDef is a resource/service member: `IDENT : node`.
type NodeMemberDef struct {
	Item
	Name     string
	NameSpan Item
	Value    Node
}

func (s *NodeMemberDef) isStatement() {}

// Block marks the `{ … }` span of the preceding shape or inline member.
// Statements inside it occupy sibling positions in the flat sequence,
// bounded by [Block.Start, Block.End) and terminated at
// LastStatementIndex.
type Block struct {
	Item
	LastStatementIndex int
}

func (s *Block) isStatement() {}

// StmtErr is a statement-level parse error, collected in errors and also
// left in place in the statement sequence so locators keep working.
type StmtErr struct {
	Item
	Message string
}

func (s *StmtErr) isStatement() {}
