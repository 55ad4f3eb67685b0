package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/minic-lang/minic/lexer"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json, or yaml)", s)
	}
}

// Record is the structured form of a token used by the json and yaml formats.
type Record struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Kind    string `json:"kind" yaml:"kind"`
	Lexeme  string `json:"lexeme" yaml:"lexeme"`
	Literal any    `json:"literal,omitempty" yaml:"literal,omitempty"`
}

func NewRecord(tok lexer.Token) Record {
	return Record{
		Line:    tok.Line,
		Column:  tok.Column,
		Kind:    tok.Kind.String(),
		Lexeme:  tok.Lexeme,
		Literal: tok.Literal.Value(),
	}
}

// Write renders toks to w. The text format writes one token per line using the
// reference rendering.
func Write(w io.Writer, format Format, toks []lexer.Token) error {
	switch format {
	case FormatText:
		for _, tok := range toks {
			if _, err := fmt.Fprintln(w, tok.String()); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(toks))

	case FormatYAML:
		out, err := yaml.Marshal(records(toks))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func records(toks []lexer.Token) []Record {
	recs := make([]Record, len(toks))
	for i, tok := range toks {
		recs[i] = NewRecord(tok)
	}
	return recs
}
