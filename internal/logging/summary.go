package logging

import (
	"github.com/minic-lang/minic/lexer"
)

// SummaryFields describes a token stream as logr key/value pairs.
func SummaryFields(toks []lexer.Token) []any {
	var errs, lines int
	byKind := map[string]int{}
	for _, tok := range toks {
		if tok.Line > lines {
			lines = tok.Line
		}
		if kind, ok := lexer.ClassifyError(tok); ok {
			errs++
			byKind[kind.String()]++
		}
	}

	fields := []any{
		"tokens", len(toks),
		"errors", errs,
		"lines", lines,
	}
	if errs > 0 {
		fields = append(fields, "errorsByKind", byKind)
	}
	return fields
}
