package lexer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind enumerates the lexical errors the scanner can report.
type ErrorKind int

const (
	InvalidCharacter ErrorKind = iota
	UnterminatedString
	UnterminatedComment
	MalformedNumber
	IntegerOutOfRange
)

var errorKindNames = [...]string{
	InvalidCharacter:    "invalid_character",
	UnterminatedString:  "unterminated_string",
	UnterminatedComment: "unterminated_comment",
	MalformedNumber:     "malformed_number",
	IntegerOutOfRange:   "integer_out_of_range",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

var (
	ErrInvalidCharacter    = &LexicalError{Kind: InvalidCharacter}
	ErrUnterminatedString  = &LexicalError{Kind: UnterminatedString}
	ErrUnterminatedComment = &LexicalError{Kind: UnterminatedComment}
	ErrMalformedNumber     = &LexicalError{Kind: MalformedNumber}
	ErrIntegerOutOfRange   = &LexicalError{Kind: IntegerOutOfRange}
)

// LexicalError describes a malformed lexical unit. Text holds the offending source
// text for the kinds that include it in their message.
type LexicalError struct {
	Kind ErrorKind
	Text string
}

func (e *LexicalError) Error() string {
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("invalid character: '%s'", e.Text)
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedComment:
		return "unterminated block comment"
	case MalformedNumber:
		return fmt.Sprintf("malformed number: '%s'", e.Text)
	case IntegerOutOfRange:
		return fmt.Sprintf("integer literal out of range: %s", e.Text)
	default:
		return "lexical error"
	}
}

// Is matches any LexicalError of the same kind, so errors.Is works against the Err* values.
func (e *LexicalError) Is(target error) bool {
	var t *LexicalError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// messagePrefixes are the fixed leading parts of each rendered message.
var messagePrefixes = [...]struct {
	kind   ErrorKind
	prefix string
}{
	{InvalidCharacter, "invalid character: "},
	{UnterminatedString, "unterminated string literal"},
	{UnterminatedComment, "unterminated block comment"},
	{MalformedNumber, "malformed number: "},
	{IntegerOutOfRange, "integer literal out of range: "},
}

// ClassifyError returns the kind of error an error token was rendered from.
// The second return value is false for tokens that aren't errors or whose message isn't recognized.
func ClassifyError(tok Token) (ErrorKind, bool) {
	if tok.Kind != Error {
		return 0, false
	}
	for _, p := range messagePrefixes {
		if strings.HasPrefix(tok.Lexeme, p.prefix) {
			return p.kind, true
		}
	}
	return 0, false
}
