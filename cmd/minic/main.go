package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/minic-lang/minic/internal/cel"
	"github.com/minic-lang/minic/internal/logging"
	"github.com/minic-lang/minic/internal/metrics"
	"github.com/minic-lang/minic/internal/render"
	"github.com/minic-lang/minic/lexer"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var ErrLexicalErrors = errors.New("input contains lexical errors")

const usage = `usage: minic <command> [flags]

commands:
  lex       tokenize a source file and print the token stream
  keywords  list reserved words
  version   print the version`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}

	switch args[0] {
	case "lex":
		return runLex(ctx, args[1:], stdout)
	case "keywords":
		for _, kw := range lexer.Keywords() {
			fmt.Fprintln(stdout, kw)
		}
		return nil
	case "version":
		fmt.Fprintln(stdout, version)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

type lexOptions struct {
	Input          string
	Output         string
	Format         string
	Filter         string
	MetricsFile    string
	StrictComments bool
	FailOnError    bool
	Debug          bool
}

func (o *lexOptions) Bind(set *flag.FlagSet) {
	set.StringVar(&o.Input, "input", "", "Path to the source file (required)")
	set.StringVar(&o.Output, "output", "", "Write tokens to this file instead of stdout")
	set.StringVar(&o.Format, "format", string(render.FormatText), "Output format: text, json, or yaml")
	set.StringVar(&o.Filter, "filter", "", "Optional CEL expression over kind, lexeme, line, column, literal, isError and errorKind. Tokens for which it is false are dropped (end-of-input is always kept)")
	set.StringVar(&o.MetricsFile, "metrics-file", "", "Write token/error counters to this file in the prometheus text format")
	set.BoolVar(&o.StrictComments, "strict-comments", false, "Report block comments that are never closed as errors")
	set.BoolVar(&o.FailOnError, "fail-on-error", false, "Exit non-zero if any lexical error was found")
	set.BoolVar(&o.Debug, "debug", false, "Enable debug logging, including every lexical error")
}

func runLex(ctx context.Context, args []string, stdout io.Writer) error {
	opts := &lexOptions{}
	set := flag.NewFlagSet("lex", flag.ContinueOnError)
	opts.Bind(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	if opts.Input == "" {
		return errors.New("-input is required")
	}

	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	var match func(lexer.Token) (bool, error)
	if opts.Filter != "" {
		prgm, err := cel.Parse(opts.Filter)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		match = func(tok lexer.Token) (bool, error) { return cel.Match(ctx, prgm, tok) }
	}

	logger, err := logging.New(opts.Debug, version)
	if err != nil {
		return fmt.Errorf("constructing logger: %w", err)
	}
	logger = logger.WithValues("scanID", uuid.NewString(), "input", opts.Input)

	src, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	collectors := metrics.New()
	registry := prometheus.NewRegistry()
	if err := collectors.Register(registry); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	toks := lexer.Tokenize(string(src),
		lexer.WithLogger(logger),
		lexer.WithMetrics(collectors),
		lexer.WithStrictComments(opts.StrictComments))
	logging.NewLogger().Log(logr.NewContext(ctx, logger), "scan complete", logging.SummaryFields(toks)...)

	out := toks
	if match != nil {
		out, err = filterTokens(toks, match)
		if err != nil {
			return fmt.Errorf("evaluating filter: %w", err)
		}
	}

	if err := writeTokens(opts.Output, stdout, format, out); err != nil {
		return fmt.Errorf("writing tokens: %w", err)
	}

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	if opts.FailOnError {
		if n := countErrors(toks); n > 0 {
			return fmt.Errorf("%w: %d error token(s)", ErrLexicalErrors, n)
		}
	}
	return nil
}

// filterTokens keeps the tokens match accepts. The end-of-input token is always kept.
func filterTokens(toks []lexer.Token, match func(lexer.Token) (bool, error)) ([]lexer.Token, error) {
	out := make([]lexer.Token, 0, len(toks))
	for _, tok := range toks {
		if tok.IsEOF() {
			out = append(out, tok)
			continue
		}
		ok, err := match(tok)
		if err != nil {
			return nil, fmt.Errorf("token at %d:%d: %w", tok.Line, tok.Column, err)
		}
		if ok {
			out = append(out, tok)
		}
	}
	return out, nil
}

func writeTokens(path string, stdout io.Writer, format render.Format, toks []lexer.Token) error {
	if path == "" {
		return render.Write(stdout, format, toks)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Write(f, format, toks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func countErrors(toks []lexer.Token) (n int) {
	for _, tok := range toks {
		if tok.IsError() {
			n++
		}
	}
	return n
}
