package idl

// ParseError is an in-band diagnostic emitted by the parser. It is never
// raised as a Go error — it is simply collected, per spec.md §7.
type ParseError struct {
	Start   Offset
	End     Offset
	Message string
}

// SyntaxTree is the immutable result of parsing a Document snapshot: a
// flat statement sequence plus the errors encountered along the way.
// Once produced it is never mutated and may be freely shared (spec.md
// §3 "Lifecycle", §5).
type SyntaxTree struct {
	Revision   uint64
	Statements []Statement
	Errors     []ParseError
}

// NodeParseResult is the result of parseNode: a single recursive value
// plus any errors encountered while parsing it.
type NodeParseResult struct {
	Value  Node
	Errors []ParseError
}

// ParseIdl parses a Document snapshot into a flat statement sequence.
// It never fails: every byte of input produces either a recognized
// statement or an in-band StmtErr, and parsing always terminates
// (spec.md §8 "Parse totality").
func ParseIdl(doc *Document) *SyntaxTree {
	buf := doc.borrowAll()
	p := newParser(buf)
	p.parseTopLevel()
	return &SyntaxTree{
		Revision:   doc.Revision(),
		Statements: p.statements,
		Errors:     p.errors,
	}
}

// ParseNode parses a Document snapshot as a single node value (used for
// standalone trait-argument or metadata-value editing contexts).
func ParseNode(doc *Document) *NodeParseResult {
	buf := doc.borrowAll()
	p := newParser(buf)
	value := p.parseNodeValue()
	return &NodeParseResult{Value: value, Errors: p.errors}
}

// parser is the shared recursive-descent engine behind both entry
// points. It consumes a Document snapshot, never mutates it, and
// accumulates statements/node-errors as it goes.
type parser struct {
	toks []Token
	pos  int

	statements []Statement
	errors     []ParseError

	// eofHit replaces the source implementation's EOF-unwind exception
	// (spec.md §9): every loop checks it at its head and bails out
	// rather than looping forever once the token stream is exhausted.
	eofHit bool

	// blockStack holds indices into statements of open Block entries,
	// innermost last, so an EOF mid-body can close every nested block.
	blockStack []int
}

func newParser(buf []uint16) *parser {
	lx := newLexer(buf)
	var toks []Token
	for {
		t := lx.next()
		toks = append(toks, t)
		if t.Kind == TokEOF {
			break
		}
	}
	return &parser{toks: toks}
}

func (p *parser) bufLen() int {
	if len(p.toks) == 0 {
		return 0
	}
	return p.toks[len(p.toks)-1].End
}

func (p *parser) peek() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: TokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) Token {
	if p.pos+n >= len(p.toks) {
		return Token{Kind: TokEOF}
	}
	return p.toks[p.pos+n]
}

func (p *parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *parser) advance() Token {
	t := p.peek()
	if t.Kind == TokEOF {
		p.eofHit = true
		return t
	}
	p.pos++
	return t
}

// mustProgress returns a closure to call at the end of a loop iteration;
// if the parser made no progress it force-advances by one token so
// error-recovery loops always terminate (spec.md §4.2 recovery idiom,
// grounded on java/parser/parser.go's mustProgress).
func (p *parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.eofHit {
			return false
		}
		if p.pos == saved {
			p.advance()
		}
		return true
	}
}

func (p *parser) addError(start, end int, msg string) {
	p.errors = append(p.errors, ParseError{Start: start, End: end, Message: msg})
}

// recoverToStatementStart skips tokens until the next identifier, '@',
// or '$', which is where a new top-level or member statement can begin
// (spec.md §4.2.2 "recovers to the next member start"), or until a '}'
// that may close the enclosing body.
func (p *parser) recoverToStatementStart() {
	for !p.eofHit && !p.check(TokEOF) {
		switch p.peek().Kind {
		case TokIdent, TokAt, TokDollar, TokRBrace:
			return
		}
		p.advance()
	}
}

// --- Top level ---------------------------------------------------------

func (p *parser) parseTopLevel() {
	for {
		if p.eofHit || p.check(TokEOF) {
			break
		}
		progress := p.mustProgress()
		p.parseTopLevelStatement()
		if !progress() {
			break
		}
	}
	p.closeDanglingBlocks()
}

func (p *parser) closeDanglingBlocks() {
	end := p.bufLen()
	for _, idx := range p.blockStack {
		blk := p.statements[idx].(*Block)
		blk.End = end
		blk.LastStatementIndex = len(p.statements) - 1
		p.addError(end, end, "expected }")
	}
	p.blockStack = nil
}

func (p *parser) parseTopLevelStatement() {
	tok := p.peek()
	switch tok.Kind {
	case TokAt:
		p.statements = append(p.statements, p.parseTraitApplication())
	case TokDollar:
		p.statements = append(p.statements, p.parseControl())
	case TokIdent:
		p.dispatchIdentStatement()
	default:
		// Error recovery: skip one token (spec.md §4.2.1 "anything
		// else: skip one character").
		start := tok.Start
		end := tok.End
		if end <= start {
			end = start + 1
		}
		p.advance()
		p.addError(start, end, "unexpected token")
		p.statements = append(p.statements, &StmtErr{Item: Item{Start: start, End: end}, Message: "unexpected token"})
	}
}

func (p *parser) dispatchIdentStatement() {
	lit := p.peek().Literal
	switch lit {
	case "apply":
		p.statements = append(p.statements, p.parseApply())
	case "metadata":
		p.statements = append(p.statements, p.parseMetadata())
	case "use":
		p.statements = append(p.statements, p.parseUse())
	case "namespace":
		p.statements = append(p.statements, p.parseNamespace())
	default:
		p.parseShapeDefAndBody()
	}
}

// --- Simple top-level statements ---------------------------------------

func (p *parser) parseControl() Statement {
	start := p.peek().Start
	p.advance() // '$'
	if !p.check(TokIdent) {
		end := p.peek().End
		p.addError(start, end, "expected control key")
		return &StmtErr{Item: Item{Start: start, End: end}, Message: "expected control key"}
	}
	keyTok := p.advance()
	var value Node
	if p.check(TokColon) {
		p.advance()
		value = p.parseNodeValue()
	} else {
		p.addError(keyTok.End, keyTok.End, "expected :")
	}
	end := p.lastConsumedEnd(start)
	return &Control{
		Item:    Item{Start: start, End: end},
		Key:     keyTok.Literal,
		KeySpan: Item{Start: keyTok.Start, End: keyTok.End},
		Value:   value,
	}
}

func (p *parser) parseMetadata() Statement {
	start := p.peek().Start
	p.advance() // 'metadata'
	var key string
	if p.check(TokString) || p.check(TokIdent) {
		key = unquote(p.advance().Literal)
	} else {
		p.addError(start, p.peek().End, "expected metadata key")
	}
	if p.check(TokEquals) {
		p.advance()
	} else {
		p.addError(start, p.peek().End, "expected =")
	}
	value := p.parseNodeValue()
	end := p.lastConsumedEnd(start)
	return &Metadata{Item: Item{Start: start, End: end}, Key: key, Value: value}
}

func (p *parser) parseNamespace() Statement {
	start := p.peek().Start
	p.advance() // 'namespace'
	var name string
	var nameSpan Item
	if p.check(TokIdent) {
		t := p.advance()
		name = t.Literal
		nameSpan = Item{Start: t.Start, End: t.End}
	} else {
		p.addError(start, p.peek().End, "expected namespace name")
	}
	end := p.lastConsumedEnd(start)
	return &Namespace{Item: Item{Start: start, End: end}, Name: name, NameSpan: nameSpan}
}

func (p *parser) parseUse() Statement {
	start := p.peek().Start
	p.advance() // 'use'
	var id string
	var span Item
	if p.check(TokIdent) {
		t := p.advance()
		id = t.Literal
		span = Item{Start: t.Start, End: t.End}
	} else {
		p.addError(start, p.peek().End, "expected shape id")
	}
	end := p.lastConsumedEnd(start)
	return &Use{Item: Item{Start: start, End: end}, ShapeID: id, ShapeIDSpan: span}
}

func (p *parser) parseApply() Statement {
	start := p.peek().Start
	p.advance() // 'apply'
	var target string
	var targetSpan Item
	if p.check(TokIdent) {
		t := p.advance()
		target = t.Literal
		targetSpan = Item{Start: t.Start, End: t.End}
	} else {
		p.addError(start, p.peek().End, "expected target shape id")
	}
	var traitID string
	var traitValue Node
	if p.check(TokAt) {
		p.advance()
		traitID, traitValue = p.parseTraitIDAndValue()
	} else {
		p.addError(start, p.peek().End, "expected trait application")
	}
	end := p.lastConsumedEnd(start)
	return &Apply{
		Item: Item{Start: start, End: end}, Target: target, TargetSpan: targetSpan,
		TraitID: traitID, TraitValue: traitValue,
	}
}

func (p *parser) parseTraitApplication() Statement {
	start := p.peek().Start
	p.advance() // '@'
	var idSpan Item
	if p.check(TokIdent) {
		idTok := p.peek()
		idSpan = Item{Start: idTok.Start, End: idTok.End}
	}
	id, value := p.parseTraitIDAndValue()
	end := p.lastConsumedEnd(start)
	return &TraitApplication{Item: Item{Start: start, End: end}, ID: id, IDSpan: idSpan, Value: value}
}

func (p *parser) parseTraitIDAndValue() (string, Node) {
	var id string
	var idStart, idEnd int
	if p.check(TokIdent) {
		t := p.advance()
		id = t.Literal
		idStart, idEnd = t.Start, t.End
	} else {
		idStart = p.peek().Start
		idEnd = idStart
		p.addError(idStart, idEnd, "expected trait id")
	}
	_ = idStart
	_ = idEnd
	var value Node
	if p.check(TokLParen) {
		p.advance()
		value = p.parseTraitParenValue()
		if p.check(TokRParen) {
			p.advance()
		} else {
			p.addError(p.peek().Start, p.peek().End, "expected )")
		}
	}
	return id, value
}

// parseTraitParenValue implements spec.md §4.2.3's trait-application
// rewind rule: `(...)`, is a plain node value when it starts with
// `{`/`[`/a number/a quoted string; it is an implicit Kvps when it
// starts with an identifier or quoted string immediately followed by
// `:`.
func (p *parser) parseTraitParenValue() Node {
	if p.check(TokRParen) {
		// Empty parens: `@trait()`.
		return &Kvps{Item: Item{Start: p.peek().Start, End: p.peek().Start}}
	}

	switch p.peek().Kind {
	case TokLBrace, TokLBracket, TokNumber:
		return p.parseNodeValue()
	case TokIdent, TokString, TokTextBlock:
		if p.peekN(1).Kind == TokColon {
			return p.parseImplicitKvps()
		}
		return p.parseNodeValue()
	default:
		return p.parseNodeValue()
	}
}

// parseImplicitKvps parses a parenthesised key:value list with no
// surrounding braces, stopping at the matching ')'.
func (p *parser) parseImplicitKvps() Node {
	start := p.peek().Start
	var entries []Kvp
	for {
		if p.eofHit || p.check(TokEOF) || p.check(TokRParen) {
			break
		}
		progress := p.mustProgress()
		entries = append(entries, p.parseKvp())
		if !progress() {
			break
		}
	}
	end := p.lastConsumedEnd(start)
	return &Kvps{Item: Item{Start: start, End: end}, Entries: entries}
}

// --- Shapes --------------------------------------------------------------

func (p *parser) parseShapeDefAndBody() {
	start := p.peek().Start
	shapeTypeTok := p.advance()
	var name string
	var nameSpan Item
	if p.check(TokIdent) {
		t := p.advance()
		name = t.Literal
		nameSpan = Item{Start: t.Start, End: t.End}
	} else {
		p.addError(start, p.peek().End, "expected shape name")
	}

	shapeDef := &ShapeDef{
		Item: Item{Start: start, End: p.lastConsumedEnd(start)},
		ShapeType: shapeTypeTok.Literal, Name: name, NameSpan: nameSpan,
	}
	p.statements = append(p.statements, shapeDef)

	if p.check(TokIdent) && p.peek().Literal == "for" {
		p.parseForResource()
	}
	if p.check(TokIdent) && p.peek().Literal == "with" {
		p.parseMixins()
	}

	if p.check(TokLBrace) && shapeTypesWithBody[shapeTypeTok.Literal] {
		shapeDef.HasBody = true
		p.parseShapeBody(shapeTypeTok.Literal)
	}
	shapeDef.End = p.lastConsumedEnd(start)
}

func (p *parser) parseForResource() {
	start := p.peek().Start
	p.advance() // 'for'
	var resID string
	if p.check(TokIdent) {
		resID = p.advance().Literal
	} else {
		p.addError(start, p.peek().End, "expected resource id")
	}
	end := p.lastConsumedEnd(start)
	p.statements = append(p.statements, &ForResource{Item: Item{Start: start, End: end}, ResourceID: resID})
}

func (p *parser) parseMixins() {
	start := p.peek().Start
	p.advance() // 'with'
	var names []string
	if p.check(TokLBracket) {
		p.advance()
		for {
			if p.eofHit || p.check(TokEOF) || p.check(TokRBracket) {
				break
			}
			progress := p.mustProgress()
			if p.check(TokIdent) {
				names = append(names, p.advance().Literal)
			} else {
				p.advance()
			}
			if !progress() {
				break
			}
		}
		if p.check(TokRBracket) {
			p.advance()
		} else {
			p.addError(p.peek().Start, p.peek().End, "expected ]")
		}
	} else {
		p.addError(start, p.peek().End, "expected [")
	}
	end := p.lastConsumedEnd(start)
	p.statements = append(p.statements, &Mixins{Item: Item{Start: start, End: end}, Names: names})
}

// parseShapeBody parses a `{ members... }` body, emitting a Block
// sentinel followed by zero or more member statements in the flat
// sequence (spec.md §4.2.2/§3 "Block"). Blocks may nest (inline
// input/output shapes), handled via p.blockStack.
func (p *parser) parseShapeBody(shapeType string) {
	lbrace := p.advance() // '{'
	blockIdx := len(p.statements)
	block := &Block{Item: Item{Start: lbrace.Start, End: lbrace.End}}
	p.statements = append(p.statements, block)
	p.blockStack = append(p.blockStack, blockIdx)

	for {
		if p.eofHit || p.check(TokEOF) {
			// EOF reached deep inside the body: closeDanglingBlocks,
			// called once parseTopLevel's loop exits, finishes this
			// block (and any ancestors) and records "expected }".
			return
		}
		if p.check(TokRBrace) {
			rbrace := p.advance()
			block.End = rbrace.End
			block.LastStatementIndex = len(p.statements) - 1
			p.popBlockStack(blockIdx)
			return
		}

		progress := p.mustProgress()
		p.parseMember(shapeType)
		if !progress() {
			// progress only fails once EOF is hit; the block stays open
			// for closeDanglingBlocks, as above.
			return
		}
	}
}

func (p *parser) popBlockStack(idx int) {
	for len(p.blockStack) > 0 && p.blockStack[len(p.blockStack)-1] >= idx {
		p.blockStack = p.blockStack[:len(p.blockStack)-1]
	}
}

func (p *parser) parseMember(shapeType string) {
	if p.check(TokAt) {
		p.statements = append(p.statements, p.parseTraitApplication())
		return
	}

	switch shapeType {
	case "enum", "intEnum":
		p.parseEnumMember()
	case "resource", "service":
		p.parseNodeMember()
	case "operation":
		p.parseOperationMember()
	default: // structure, list, map, union, set
		p.parseStructuralMember()
	}
}

func (p *parser) parseEnumMember() {
	start := p.peek().Start
	if !p.check(TokIdent) {
		end := p.peek().End
		p.addError(start, end, "expected enum member name")
		p.recoverToStatementStart()
		p.statements = append(p.statements, &StmtErr{Item: Item{Start: start, End: end}, Message: "expected enum member name"})
		return
	}
	nameTok := p.advance()
	var value Node
	if p.check(TokEquals) {
		p.advance()
		value = p.parseNodeValue()
	}
	end := p.lastConsumedEnd(start)
	p.statements = append(p.statements, &EnumMemberDef{
		Item: Item{Start: start, End: end}, Name: nameTok.Literal,
		NameSpan: Item{Start: nameTok.Start, End: nameTok.End}, Value: value,
	})
}

func (p *parser) parseStructuralMember() {
	start := p.peek().Start
	if p.check(TokDollar) {
		p.advance()
		if !p.check(TokIdent) {
			end := p.peek().End
			p.addError(start, end, "expected elided member name")
			p.recoverToStatementStart()
			return
		}
		nameTok := p.advance()
		end := p.lastConsumedEnd(start)
		p.statements = append(p.statements, &ElidedMemberDef{
			Item: Item{Start: start, End: end}, Name: nameTok.Literal,
			NameSpan: Item{Start: nameTok.Start, End: nameTok.End},
		})
		return
	}

	if !p.check(TokIdent) {
		end := p.peek().End
		p.addError(start, end, "expected member name")
		p.recoverToStatementStart()
		p.statements = append(p.statements, &StmtErr{Item: Item{Start: start, End: end}, Message: "expected member name"})
		return
	}
	nameTok := p.advance()

	colonPos := -1
	var target string
	var targetSpan Item
	if p.check(TokColon) {
		colonPos = p.peek().Start
		p.advance()
		if p.check(TokIdent) {
			t := p.advance()
			target = t.Literal
			targetSpan = Item{Start: t.Start, End: t.End}
		} else {
			p.addError(colonPos, p.peek().End, "expected member target")
		}
	}

	var value Node
	if p.check(TokEquals) {
		p.advance()
		value = p.parseNodeValue()
	}

	end := p.lastConsumedEnd(start)
	p.statements = append(p.statements, &MemberDef{
		Item: Item{Start: start, End: end}, Name: nameTok.Literal,
		NameSpan: Item{Start: nameTok.Start, End: nameTok.End},
		ColonPos: colonPos, Target: target, TargetSpan: targetSpan, Value: value,
	})
}

func (p *parser) parseNodeMember() {
	start := p.peek().Start
	if !p.check(TokIdent) {
		end := p.peek().End
		p.addError(start, end, "expected member name")
		p.recoverToStatementStart()
		p.statements = append(p.statements, &StmtErr{Item: Item{Start: start, End: end}, Message: "expected member name"})
		return
	}
	nameTok := p.advance()
	var value Node
	if p.check(TokColon) {
		p.advance()
		value = p.parseNodeValue()
	} else {
		p.addError(nameTok.End, nameTok.End, "expected :")
		value = &ErrNode{Item: Item{Start: nameTok.End, End: nameTok.End}, Message: "missing value"}
	}
	end := p.lastConsumedEnd(start)
	p.statements = append(p.statements, &NodeMemberDef{
		Item: Item{Start: start, End: end}, Name: nameTok.Literal,
		NameSpan: Item{Start: nameTok.Start, End: nameTok.End}, Value: value,
	})
}

func (p *parser) parseOperationMember() {
	start := p.peek().Start
	if !p.check(TokIdent) {
		end := p.peek().End
		p.addError(start, end, "expected operation member name")
		p.recoverToStatementStart()
		p.statements = append(p.statements, &StmtErr{Item: Item{Start: start, End: end}, Message: "expected operation member name"})
		return
	}
	nameTok := p.advance()

	if p.check(TokWalrus) {
		p.advance()
		p.statements = append(p.statements, &InlineMemberDef{
			Item: Item{Start: start, End: p.lastConsumedEnd(start)}, Keyword: nameTok.Literal,
		})
		if p.check(TokLBrace) {
			p.parseShapeBody("structure")
		} else {
			p.addError(p.peek().Start, p.peek().End, "expected {")
		}
		return
	}

	var value Node
	if p.check(TokColon) {
		p.advance()
		value = p.parseNodeValue()
	} else {
		p.addError(nameTok.End, nameTok.End, "expected : or :=")
		value = &ErrNode{Item: Item{Start: nameTok.End, End: nameTok.End}, Message: "missing value"}
	}
	end := p.lastConsumedEnd(start)
	p.statements = append(p.statements, &NodeMemberDef{
		Item: Item{Start: start, End: end}, Name: nameTok.Literal,
		NameSpan: Item{Start: nameTok.Start, End: nameTok.End}, Value: value,
	})
}

// --- Node values ---------------------------------------------------------

// parseNodeValue is the generic recursive-descent entry for `{}`, `[]`,
// `""`/`""" """`, bare identifiers, and numbers (spec.md §4.2.3).
func (p *parser) parseNodeValue() Node {
	if p.eofHit || p.check(TokEOF) {
		p.eofHit = true
		start := p.peek().Start
		p.addError(start, start, "expected value")
		return &ErrNode{Item: Item{Start: start, End: start}, Message: "expected value"}
	}

	switch p.peek().Kind {
	case TokLBrace:
		return p.parseObj()
	case TokLBracket:
		return p.parseArr()
	case TokString, TokTextBlock:
		t := p.advance()
		return &Str{Item: Item{Start: t.Start, End: t.End}, Value: unquote(t.Literal), Quoted: true}
	case TokNumber:
		t := p.advance()
		return &Num{Item: Item{Start: t.Start, End: t.End}, Literal: t.Literal}
	case TokIdent:
		t := p.advance()
		return &Ident{Item: Item{Start: t.Start, End: t.End}, Name: t.Literal}
	default:
		start := p.peek().Start
		end := p.peek().End
		if end <= start {
			end = start + 1
		}
		p.addError(start, end, "expected value")
		return &ErrNode{Item: Item{Start: start, End: end}, Message: "expected value"}
	}
}

func (p *parser) parseObj() Node {
	start := p.peek().Start
	p.advance() // '{'
	var entries []Kvp
	for {
		if p.eofHit || p.check(TokEOF) || p.check(TokRBrace) {
			break
		}
		progress := p.mustProgress()
		entries = append(entries, p.parseKvp())
		if !progress() {
			break
		}
	}
	if p.check(TokRBrace) {
		p.advance()
	} else {
		p.addError(p.peek().Start, p.peek().End, "expected }")
	}
	end := p.lastConsumedEnd(start)
	return &Obj{Item: Item{Start: start, End: end}, Body: Kvps{Item: Item{Start: start, End: end}, Entries: entries}}
}

func (p *parser) parseKvp() Kvp {
	start := p.peek().Start
	var key string
	var keySpan Item
	if p.check(TokIdent) || p.check(TokString) || p.check(TokTextBlock) {
		t := p.advance()
		key = unquote(t.Literal)
		keySpan = Item{Start: t.Start, End: t.End}
	} else {
		p.addError(start, p.peek().End, "expected key")
		keySpan = Item{Start: start, End: start}
	}

	var value Node
	if p.check(TokColon) {
		p.advance()
		if p.check(TokRBrace) || p.check(TokRParen) || p.check(TokEOF) || p.eofHit {
			// Trailing "key:" with nothing after it — leave Value nil
			// so NodeCursor can offer a completion slot (spec.md §4.4).
			value = nil
		} else {
			value = p.parseNodeValue()
		}
	} else {
		p.addError(keySpan.End, keySpan.End, "expected :")
	}

	end := p.lastConsumedEnd(start)
	return Kvp{Item: Item{Start: start, End: end}, Key: key, KeySpan: keySpan, Value: value}
}

func (p *parser) parseArr() Node {
	start := p.peek().Start
	p.advance() // '['
	var elements []Node
	for {
		if p.eofHit || p.check(TokEOF) || p.check(TokRBracket) {
			break
		}
		progress := p.mustProgress()
		elements = append(elements, p.parseNodeValue())
		if !progress() {
			break
		}
	}
	if p.check(TokRBracket) {
		p.advance()
	} else {
		p.addError(p.peek().Start, p.peek().End, "expected ]")
	}
	end := p.lastConsumedEnd(start)
	return &Arr{Item: Item{Start: start, End: end}, Elements: elements}
}

// --- helpers ---------------------------------------------------------------

// lastConsumedEnd returns the end offset of the most recently consumed
// token, or start if nothing has been consumed yet.
func (p *parser) lastConsumedEnd(start int) int {
	if p.pos == 0 {
		return start
	}
	return p.toks[p.pos-1].End
}

func unquote(lit string) string {
	if len(lit) >= 6 && lit[:3] == `"""` && lit[len(lit)-3:] == `"""` {
		return lit[3 : len(lit)-3]
	}
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lit[1 : len(lit)-1]
	}
	return lit
}
