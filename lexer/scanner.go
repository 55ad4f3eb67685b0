package lexer

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/go-logr/logr"

	"github.com/minic-lang/minic/internal/metrics"
)

// maxIdentifierLength is the longest identifier (in bytes) the scanner accepts.
const maxIdentifierLength = 255

type position struct {
	// Offset is the position of the cursor in bytes relative to the start of the input.
	Offset int

	Line   int
	Column int
}

// snapshot is everything needed to resume scanning from an earlier point.
type snapshot struct {
	start    int
	startPos position
	pos      position
}

// Scanner converts source text into tokens on demand. It is not safe for concurrent use;
// tokenize independent inputs with independent scanners.
type Scanner struct {
	src string
	pos position

	// start and startPos describe the first character of the token being recognized.
	start    int
	startPos position

	keywords       *keywordTable
	strictComments bool
	peeking        bool
	logger         logr.Logger
	metrics        *metrics.Collectors
}

type Option func(*Scanner)

// WithLogger logs every lexical error at V(1).
func WithLogger(l logr.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithMetrics counts produced tokens and errors. Peeked tokens are not counted.
func WithMetrics(c *metrics.Collectors) Option {
	return func(s *Scanner) { s.metrics = c }
}

// WithStrictComments reports block comments that run to the end of input as
// an error token. By default they silently end the stream.
func WithStrictComments(strict bool) Option {
	return func(s *Scanner) { s.strictComments = strict }
}

func New(src string, opts ...Option) *Scanner {
	s := &Scanner{
		keywords: newKeywordTable(),
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(src)
	return s
}

// Reset points the scanner at a new input, keeping its options.
func (s *Scanner) Reset(src string) {
	s.src = src
	s.pos = position{Line: 1, Column: 1}
	s.start = 0
	s.startPos = s.pos
}

// Tokenize scans src to completion. The result always ends with exactly one EOF token.
func Tokenize(src string, opts ...Option) []Token {
	s := New(src, opts...)
	var toks []Token
	for {
		tok := s.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func (s *Scanner) IsAtEnd() bool { return s.pos.Offset >= len(s.src) }
func (s *Scanner) Line() int     { return s.pos.Line }
func (s *Scanner) Column() int   { return s.pos.Column }

// NextToken returns the next token. Once the input is exhausted it keeps returning EOF.
func (s *Scanner) NextToken() Token {
	tok := s.scan()
	s.metrics.ObserveToken(tok.Kind.String())
	return tok
}

// PeekToken returns the token NextToken would return without consuming it.
func (s *Scanner) PeekToken() Token {
	snap := s.save()
	s.peeking = true
	defer func() {
		s.restore(snap)
		s.peeking = false
	}()
	return s.scan()
}

func (s *Scanner) save() snapshot {
	return snapshot{start: s.start, startPos: s.startPos, pos: s.pos}
}

func (s *Scanner) restore(snap snapshot) {
	s.start = snap.start
	s.startPos = snap.startPos
	s.pos = snap.pos
}

func (s *Scanner) scan() Token {
	if tok, ok := s.skipTrivia(); ok {
		return tok
	}
	s.markStart()

	if s.IsAtEnd() {
		return s.simpleToken(EOF)
	}

	r := s.advance()
	switch r {
	case '(':
		return s.simpleToken(LParen)
	case ')':
		return s.simpleToken(RParen)
	case '{':
		return s.simpleToken(LBrace)
	case '}':
		return s.simpleToken(RBrace)
	case '[':
		return s.simpleToken(LBracket)
	case ']':
		return s.simpleToken(RBracket)
	case ';':
		return s.simpleToken(Semicolon)
	case ',':
		return s.simpleToken(Comma)
	case ':':
		return s.simpleToken(Colon)
	case '%':
		return s.simpleToken(Percent)

	case '+':
		return s.simpleToken(s.either('=', PlusEqual, Plus))
	case '-':
		return s.simpleToken(s.either('=', MinusEqual, Minus))
	case '*':
		return s.simpleToken(s.either('=', StarEqual, Star))
	case '/':
		// Comments were consumed by skipTrivia
		return s.simpleToken(s.either('=', SlashEqual, Slash))
	case '=':
		return s.simpleToken(s.either('=', EqualEqual, Equal))
	case '!':
		return s.simpleToken(s.either('=', NotEqual, Bang))
	case '<':
		return s.simpleToken(s.either('=', LessEqual, Less))
	case '>':
		return s.simpleToken(s.either('=', GreaterEqual, Greater))

	case '&':
		if s.match('&') {
			return s.simpleToken(AndAnd)
		}
		return s.errorToken(&LexicalError{Kind: InvalidCharacter, Text: "&"})
	case '|':
		if s.match('|') {
			return s.simpleToken(OrOr)
		}
		return s.errorToken(&LexicalError{Kind: InvalidCharacter, Text: "|"})

	case '"':
		return s.stringLiteral()
	}

	switch {
	case isDigit(r):
		return s.number()
	case isIdentStart(r):
		return s.identifier()
	}
	return s.errorToken(&LexicalError{Kind: InvalidCharacter, Text: s.lexeme()})
}

// skipTrivia consumes whitespace and comments. It only returns a token when a
// block comment reaches the end of input and strict comment checking is enabled.
func (s *Scanner) skipTrivia() (Token, bool) {
	for !s.IsAtEnd() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()

		case '/':
			switch s.peekNext() {
			case '/':
				s.lineComment()
			case '*':
				s.markStart()
				s.advance()
				s.advance()
				if !s.blockComment() && s.strictComments {
					return s.errorToken(&LexicalError{Kind: UnterminatedComment}), true
				}
			default:
				return Token{}, false
			}

		default:
			return Token{}, false
		}
	}
	return Token{}, false
}

func (s *Scanner) lineComment() {
	for !s.IsAtEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// blockComment consumes the body of a block comment whose opening "/*" has already
// been consumed. Comments nest. It returns false if the input ends first.
func (s *Scanner) blockComment() bool {
	depth := 1
	for depth > 0 {
		if s.IsAtEnd() {
			return false
		}
		switch s.advance() {
		case '/':
			if s.match('*') {
				depth++
			}
		case '*':
			if s.match('/') {
				depth--
			}
		}
	}
	return true
}

// stringLiteral recognizes a string literal. The opening quote has been consumed.
// Characters are taken verbatim; there are no escape sequences.
func (s *Scanner) stringLiteral() Token {
	for !s.IsAtEnd() {
		switch s.peek() {
		case '"':
			s.advance()
			text := s.src[s.start+1 : s.pos.Offset-1]
			return s.token(StringLiteral, StringValue(text))
		case '\n':
			return s.errorToken(&LexicalError{Kind: UnterminatedString})
		}
		s.advance()
	}
	return s.errorToken(&LexicalError{Kind: UnterminatedString})
}

// number recognizes an integer or float literal. The first digit has been consumed.
func (s *Scanner) number() Token {
	s.digits()

	isFloat := false
	if s.peek() == '.' {
		isFloat = true
		s.advance()
		if !isDigit(s.peek()) {
			return s.errorToken(&LexicalError{Kind: MalformedNumber, Text: s.lexeme()})
		}
		s.digits()
	}

	text := s.lexeme()
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return s.errorToken(&LexicalError{Kind: MalformedNumber, Text: text})
		}
		return s.token(FloatLiteral, FloatValue(v))
	}

	v, err := strconv.ParseInt(text, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return s.errorToken(&LexicalError{Kind: IntegerOutOfRange, Text: text})
	}
	if err != nil {
		return s.errorToken(&LexicalError{Kind: MalformedNumber, Text: text})
	}
	return s.token(IntLiteral, IntValue(int32(v)))
}

func (s *Scanner) digits() {
	for isDigit(s.peek()) {
		s.advance()
	}
}

// identifier recognizes an identifier or keyword. The first character has been consumed.
func (s *Scanner) identifier() Token {
	for isIdentContinue(s.peek()) {
		s.advance()
	}

	text := s.lexeme()
	if kind, ok := s.keywords.Lookup(text); ok {
		switch kind {
		case True:
			return s.token(kind, BoolValue(true))
		case False:
			return s.token(kind, BoolValue(false))
		default:
			return s.simpleToken(kind)
		}
	}

	// Overlong identifiers are reported with the malformed number kind
	if len(text) > maxIdentifierLength {
		return s.errorToken(&LexicalError{Kind: MalformedNumber, Text: text})
	}
	return s.simpleToken(Identifier)
}

// advance consumes one character and returns it. Must not be called at the end of input.
func (s *Scanner) advance() rune {
	r, width := utf8.DecodeRuneInString(s.src[s.pos.Offset:])
	s.pos.Offset += width
	s.pos.Column++
	if r == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	}
	return r
}

// peek returns the next character without consuming it, or 0 at the end of input.
func (s *Scanner) peek() rune {
	if s.IsAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos.Offset:])
	return r
}

// peekNext returns the byte after the next one. Only used after an ASCII character.
func (s *Scanner) peekNext() byte {
	if s.pos.Offset+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos.Offset+1]
}

func (s *Scanner) match(expected rune) bool {
	if s.IsAtEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

// either consumes next and returns yes if it follows, otherwise returns no.
func (s *Scanner) either(next rune, yes, no Kind) Kind {
	if s.match(next) {
		return yes
	}
	return no
}

func (s *Scanner) markStart() {
	s.start = s.pos.Offset
	s.startPos = s.pos
}

func (s *Scanner) lexeme() string { return s.src[s.start:s.pos.Offset] }

func (s *Scanner) token(kind Kind, lit Literal) Token {
	return NewToken(kind, s.lexeme(), s.startPos.Line, s.startPos.Column, lit)
}

func (s *Scanner) simpleToken(kind Kind) Token {
	return NewSimpleToken(kind, s.lexeme(), s.startPos.Line, s.startPos.Column)
}

func (s *Scanner) errorToken(err *LexicalError) Token {
	if !s.peeking {
		s.logger.V(1).Info("lexical error", "line", s.startPos.Line, "column", s.startPos.Column, "error", err.Error())
		s.metrics.ObserveError(err.Kind.String())
	}
	return NewErrorToken(err.Error(), s.startPos.Line, s.startPos.Column)
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isIdentStart(r rune) bool { return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isIdentContinue(r rune) bool { return isIdentStart(r) || isDigit(r) }
