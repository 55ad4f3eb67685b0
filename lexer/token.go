package lexer

import (
	"fmt"
	"strconv"
)

// Kind classifies a token.
type Kind int

const (
	// Keywords
	If Kind = iota
	Else
	While
	For
	Int
	Float
	Bool
	Return
	True
	False
	Void
	Struct
	Fn

	// Literals
	Identifier
	IntLiteral
	FloatLiteral
	StringLiteral
	BoolLiteral // reserved, true/false are emitted as keywords carrying a bool literal

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Equal
	EqualEqual
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	AndAnd
	OrOr
	Bang
	PlusEqual
	MinusEqual
	StarEqual
	SlashEqual

	// Delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Colon

	EOF
	Error
)

var kindNames = [...]string{
	If:     "If",
	Else:   "Else",
	While:  "While",
	For:    "For",
	Int:    "Int",
	Float:  "Float",
	Bool:   "Bool",
	Return: "Return",
	True:   "True",
	False:  "False",
	Void:   "Void",
	Struct: "Struct",
	Fn:     "Fn",

	Identifier:    "Identifier",
	IntLiteral:    "IntLiteral",
	FloatLiteral:  "FloatLiteral",
	StringLiteral: "StringLiteral",
	BoolLiteral:   "BoolLiteral",

	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Percent:      "Percent",
	Equal:        "Equal",
	EqualEqual:   "EqualEqual",
	NotEqual:     "NotEqual",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	AndAnd:       "AndAnd",
	OrOr:         "OrOr",
	Bang:         "Bang",
	PlusEqual:    "PlusEqual",
	MinusEqual:   "MinusEqual",
	StarEqual:    "StarEqual",
	SlashEqual:   "SlashEqual",

	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Colon:     "Colon",

	EOF:   "EndOfFile",
	Error: "Error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool { return k >= If && k <= Fn }

// LiteralKind tags the variant held by a Literal.
type LiteralKind int

const (
	NoLiteral LiteralKind = iota
	IntValueKind
	FloatValueKind
	StringValueKind
	BoolValueKind
)

// Literal is the decoded payload of a literal token. Exactly one variant is set,
// as indicated by Kind. The zero value carries no literal.
type Literal struct {
	Kind  LiteralKind
	Int   int32
	Float float64
	Text  string
	Bool  bool
}

func NoValue() Literal             { return Literal{} }
func IntValue(v int32) Literal     { return Literal{Kind: IntValueKind, Int: v} }
func FloatValue(v float64) Literal { return Literal{Kind: FloatValueKind, Float: v} }
func StringValue(v string) Literal { return Literal{Kind: StringValueKind, Text: v} }
func BoolValue(v bool) Literal     { return Literal{Kind: BoolValueKind, Bool: v} }

func (l Literal) IsNone() bool { return l.Kind == NoLiteral }

// Value returns the payload as a plain Go value, or nil when there is no literal.
func (l Literal) Value() any {
	switch l.Kind {
	case IntValueKind:
		return l.Int
	case FloatValueKind:
		return l.Float
	case StringValueKind:
		return l.Text
	case BoolValueKind:
		return l.Bool
	default:
		return nil
	}
}

func (l Literal) String() string {
	switch l.Kind {
	case IntValueKind:
		return strconv.FormatInt(int64(l.Int), 10)
	case FloatValueKind:
		return strconv.FormatFloat(l.Float, 'f', -1, 64)
	case StringValueKind:
		return `"` + l.Text + `"`
	case BoolValueKind:
		return strconv.FormatBool(l.Bool)
	default:
		return ""
	}
}

// Token is a single lexical unit. Tokens are plain values and compare with ==.
type Token struct {
	Kind   Kind
	Lexeme string // exact source text, or the rendered message for error tokens

	// Line and Column are 1-based and point at the first character of the token.
	Line   int
	Column int

	Literal Literal
}

func NewToken(kind Kind, lexeme string, line, column int, lit Literal) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: column, Literal: lit}
}

// NewSimpleToken returns a token that carries no literal.
func NewSimpleToken(kind Kind, lexeme string, line, column int) Token {
	return NewToken(kind, lexeme, line, column, NoValue())
}

// NewErrorToken returns an error token whose lexeme is the given message.
func NewErrorToken(msg string, line, column int) Token {
	return NewToken(Error, msg, line, column, NoValue())
}

func (t Token) IsEOF() bool   { return t.Kind == EOF }
func (t Token) IsError() bool { return t.Kind == Error }

// String renders the token as `<line>:<column> <KIND> "<lexeme>"`, followed by the
// literal when one is present.
func (t Token) String() string {
	s := fmt.Sprintf(`%d:%d %s "%s"`, t.Line, t.Column, t.Kind, t.Lexeme)
	if !t.Literal.IsNone() {
		s += " " + t.Literal.String()
	}
	return s
}
