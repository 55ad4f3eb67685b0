package cel

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"

	"github.com/minic-lang/minic/lexer"
)

var Env *cel.Env

func init() {
	initDefaultEnv()
}

func initDefaultEnv() {
	var err error
	Env, err = cel.NewEnv(
		cel.Variable("kind", cel.StringType),
		cel.Variable("lexeme", cel.StringType),
		cel.Variable("line", cel.IntType),
		cel.Variable("column", cel.IntType),
		cel.Variable("literal", cel.DynType),
		cel.Variable("isError", cel.BoolType),
		cel.Variable("errorKind", cel.StringType),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create default CEL environment: %v", err))
	}
}

func Parse(expr string) (cel.Program, error) {
	ast, iss := Env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, iss.Err()
	}
	return Env.Program(ast, cel.InterruptCheckFrequency(10))
}

func Eval(ctx context.Context, prgm cel.Program, tok lexer.Token) (ref.Val, error) {
	val, _, err := prgm.ContextEval(ctx, newTokenActivation(tok))
	return val, err
}

// Match evaluates a boolean filter expression against tok.
func Match(ctx context.Context, prgm cel.Program, tok lexer.Token) (bool, error) {
	val, err := Eval(ctx, prgm, tok)
	if err != nil {
		return false, err
	}
	b, ok := val.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter must evaluate to a bool, got %s", val.Type().TypeName())
	}
	return b, nil
}

func newTokenActivation(tok lexer.Token) map[string]any {
	m := map[string]any{
		"kind":      tok.Kind.String(),
		"lexeme":    tok.Lexeme,
		"line":      int64(tok.Line),
		"column":    int64(tok.Column),
		"literal":   literalValue(tok.Literal),
		"isError":   tok.IsError(),
		"errorKind": "",
	}
	if kind, ok := lexer.ClassifyError(tok); ok {
		m["errorKind"] = kind.String()
	}
	return m
}

func literalValue(lit lexer.Literal) any {
	switch lit.Kind {
	case lexer.IntValueKind:
		return int64(lit.Int)
	case lexer.NoLiteral:
		return nil
	default:
		return lit.Value()
	}
}
