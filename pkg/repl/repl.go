// Package repl implements the line-at-a-time shell: each line gets a fresh
// lexer and parser and the result is printed in the selected mode.
package repl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/lexer"
	"monkey/interpreter-go/pkg/parser"
	"monkey/interpreter-go/pkg/runtime"
	"monkey/interpreter-go/pkg/token"
)

const (
	DefaultPrompt = ">> "
	exitCommand   = "exit"
)

// Mode selects what the shell prints for each line.
type Mode string

const (
	ModeRender Mode = "render"
	ModeJSON   Mode = "json"
	ModeTokens Mode = "tokens"
)

// ParseMode validates a mode name. The empty string selects ModeRender.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeRender, nil
	case ModeRender, ModeJSON, ModeTokens:
		return m, nil
	default:
		return "", fmt.Errorf("unknown output mode %q (want render, json or tokens)", s)
	}
}

// LineReader yields one line of input per call, without the trailing
// newline. It returns io.EOF when input is exhausted. *liner.State
// satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// Options configures Start.
type Options struct {
	Prompt  string
	Mode    Mode
	NoColor bool
	// OnLine, when set, is called with every non-empty line before it is
	// parsed. The CLI uses it to feed line-editor history.
	OnLine func(line string)
}

// ScannerReader adapts an io.Reader to LineReader for non-interactive input.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader reads lines from r. Prompts are discarded.
func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r), out: io.Discard}
}

// WithPromptOutput echoes prompts to w, matching what a terminal user sees.
func (s *ScannerReader) WithPromptOutput(w io.Writer) *ScannerReader {
	s.out = w
	return s
}

func (s *ScannerReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// Start runs the shell until the input ends or the user types exit.
func Start(in LineReader, out io.Writer, opts Options) error {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return err
	}

	header := color.New(color.FgRed, color.Bold)
	if opts.NoColor {
		header.DisableColor()
	} else {
		header.EnableColor()
	}

	for {
		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == exitCommand {
			return nil
		}
		if trimmed == "" {
			continue
		}
		if opts.OnLine != nil {
			opts.OnLine(line)
		}
		if err := evalLine(out, header, mode, line); err != nil {
			return err
		}
	}
}

func evalLine(out io.Writer, header *color.Color, mode Mode, line string) error {
	if mode == ModeTokens {
		fmt.Fprint(out, FormatTokens(lexer.Tokenize(line)))
		return nil
	}

	program, diags := parser.New(lexer.New(line)).ParseProgram()
	if diags.HasErrors() {
		printDiagnostics(out, header, diags)
		return nil
	}

	switch mode {
	case ModeJSON:
		data, err := json.MarshalIndent(program, "", "  ")
		if err != nil {
			return fmt.Errorf("encode program: %w", err)
		}
		fmt.Fprintln(out, string(data))
	default:
		fmt.Fprintln(out, program.String())
	}

	if value, ok := literalEcho(program); ok {
		fmt.Fprintln(out, value.Inspect())
	}
	return nil
}

func printDiagnostics(out io.Writer, header *color.Color, diags parser.Diagnostics) {
	header.Fprintln(out, "parser errors:")
	for _, d := range diags {
		fmt.Fprintf(out, "\t%s\n", d.Message)
	}
}

// literalEcho reports the value of a line that is a single literal.
func literalEcho(program *ast.Program) (runtime.Value, bool) {
	if len(program.Statements) != 1 {
		return nil, false
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	return runtime.LiteralValue(stmt.Expression)
}

// FormatTokens renders a token stream one token per line.
func FormatTokens(tokens []token.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.String())
		b.WriteByte('\n')
	}
	return b.String()
}
