// Package token defines the lexical token kinds produced by the scanner and
// consumed by the parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds, grouped by category.
const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One- or two-character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = map[Kind]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Semicolon:    "SEMICOLON",
	Slash:        "SLASH",
	Star:         "STAR",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	And:          "AND",
	Class:        "CLASS",
	Else:         "ELSE",
	False:        "FALSE",
	Fun:          "FUN",
	For:          "FOR",
	If:           "IF",
	Nil:          "NIL",
	Or:           "OR",
	Print:        "PRINT",
	Return:       "RETURN",
	Super:        "SUPER",
	This:         "THIS",
	True:         "TRUE",
	Var:          "VAR",
	While:        "WHILE",
	EOF:          "EOF",
}

// String renders the kind's symbolic name (e.g. "LEFT_PAREN"), matching the
// teacher's TokenType.String() convention.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifier text to its keyword Kind. The scanner
// consults this after matching an identifier to decide whether it is in fact
// a keyword.
var Keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Literal carries the value of a STRING or NUMBER token. Other token kinds
// carry no literal (the zero value, nil).
type Literal interface{}

// Token is a single lexical unit: its kind, the exact source substring it
// was scanned from, an optional literal value, and the 1-based source line
// it started on.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal Literal
	Line    int
}

// New builds a Token. Kept as a tiny constructor (mirrors the teacher's
// token.go constructors) so call sites read as `token.New(token.Plus, "+",
// nil, line)` rather than a bare struct literal everywhere.
func New(kind Kind, lexeme string, literal Literal, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// String renders the token for debugging (`golox lex`) as `KIND "lexeme"`,
// followed by the literal value when the token carries one.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q %v", t.Kind, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
