package idl

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokError

	TokIdent
	TokNumber
	TokString     // "..."
	TokTextBlock  // """...."""
	TokLineComment

	// Structural punctuation.
	TokLBrace   // {
	TokRBrace   // }
	TokLBracket // [
	TokRBracket // ]
	TokLParen   // (
	TokRParen   // )
	TokColon    // :
	TokEquals   // =
	TokAt       // @
	TokDollar   // $
	TokComma    // ,
	TokWalrus   // :=
)

var tokenKindNames = map[TokenKind]string{
	TokEOF:         "EOF",
	TokError:       "Error",
	TokIdent:       "Ident",
	TokNumber:      "Number",
	TokString:      "String",
	TokTextBlock:   "TextBlock",
	TokLineComment: "LineComment",
	TokLBrace:      "{",
	TokRBrace:      "}",
	TokLBracket:    "[",
	TokRBracket:    "]",
	TokLParen:      "(",
	TokRParen:      ")",
	TokColon:       ":",
	TokEquals:      "=",
	TokAt:          "@",
	TokDollar:      "$",
	TokComma:       ",",
	TokWalrus:      ":=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a single lexical unit with its byte span and literal text.
type Token struct {
	Kind    TokenKind
	Start   Offset
	End     Offset
	Literal string
}

func (t Token) Span() (Offset, Offset) { return t.Start, t.End }

// reservedWords are top-level statement keywords (spec.md §4.2.1).
var reservedWords = map[string]bool{
	"apply":     true,
	"metadata":  true,
	"use":       true,
	"namespace": true,
}

// shapeTypesWithBody dispatch into a body parser (spec.md §4.2.2).
var shapeTypesWithBody = map[string]bool{
	"structure": true,
	"union":     true,
	"list":      true,
	"map":       true,
	"set":       true,
	"enum":      true,
	"intEnum":   true,
	"resource":  true,
	"service":   true,
	"operation": true,
}

// simpleShapeTypes never take a body.
var simpleShapeTypes = map[string]bool{
	"blob": true, "boolean": true, "document": true, "string": true,
	"byte": true, "short": true, "integer": true, "long": true,
	"float": true, "double": true, "bigInteger": true, "bigDecimal": true,
	"timestamp": true,
}

func isShapeTypeToken(s string) bool {
	return shapeTypesWithBody[s] || simpleShapeTypes[s]
}
