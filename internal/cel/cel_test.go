package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minic-lang/minic/lexer"
)

func TestEvalTokenBasics(t *testing.T) {
	p, err := Parse("kind + ':' + lexeme")
	require.NoError(t, err)

	val, err := Eval(context.Background(), p, lexer.NewSimpleToken(lexer.Identifier, "foo", 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "Identifier:foo", val.Value())
}

func TestMatch(t *testing.T) {
	intTok := lexer.NewToken(lexer.IntLiteral, "42", 3, 7, lexer.IntValue(42))
	floatTok := lexer.NewToken(lexer.FloatLiteral, "1.5", 1, 1, lexer.FloatValue(1.5))
	strTok := lexer.NewToken(lexer.StringLiteral, `"hi"`, 1, 1, lexer.StringValue("hi"))
	boolTok := lexer.NewToken(lexer.True, "true", 1, 1, lexer.BoolValue(true))
	errTok := lexer.NewErrorToken("invalid character: '@'", 2, 1)
	identTok := lexer.NewSimpleToken(lexer.Identifier, "x", 1, 1)

	tests := []struct {
		name     string
		expr     string
		tok      lexer.Token
		expected bool
	}{
		{name: "kind equality", expr: `kind == "IntLiteral"`, tok: intTok, expected: true},
		{name: "kind inequality", expr: `kind == "IntLiteral"`, tok: identTok, expected: false},
		{name: "position", expr: `line == 3 && column > 5`, tok: intTok, expected: true},
		{name: "int literal", expr: `literal == 42`, tok: intTok, expected: true},
		{name: "float literal", expr: `literal > 1.0`, tok: floatTok, expected: true},
		{name: "string literal", expr: `literal.startsWith("h")`, tok: strTok, expected: true},
		{name: "bool literal", expr: `literal == true`, tok: boolTok, expected: true},
		{name: "no literal", expr: `literal == null`, tok: identTok, expected: true},
		{name: "errors", expr: `isError && errorKind == "invalid_character"`, tok: errTok, expected: true},
		{name: "not error", expr: `!isError && errorKind == ""`, tok: identTok, expected: true},
		{name: "lexeme regex", expr: `lexeme.matches("^[a-z]+$")`, tok: identTok, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.expr)
			require.NoError(t, err)

			ok, err := Match(context.Background(), p, tt.tok)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestMatchNonBool(t *testing.T) {
	p, err := Parse("line")
	require.NoError(t, err)

	_, err = Match(context.Background(), p, lexer.NewSimpleToken(lexer.Comma, ",", 1, 1))
	assert.Error(t, err)
}

func TestParseError(t *testing.T) {
	_, err := Parse("kind ==")
	assert.Error(t, err)

	_, err = Parse("unknownVariable == 1")
	assert.Error(t, err)
}
