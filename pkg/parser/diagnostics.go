package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"monkey/interpreter-go/pkg/token"
)

// DiagnosticKind classifies a recorded parse problem.
type DiagnosticKind int

const (
	// LexError: an ILLEGAL token reached a position that needs an expression.
	LexError DiagnosticKind = iota
	// ParseExpectation: the lookahead token was not the kind the grammar requires.
	ParseExpectation
	// NoPrefixHandler: the current token cannot start an expression.
	NoPrefixHandler
	// InvalidIntegerLiteral: an INT token does not fit a signed 64-bit integer.
	InvalidIntegerLiteral
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseExpectation:
		return "parse expectation"
	case NoPrefixHandler:
		return "no prefix handler"
	case InvalidIntegerLiteral:
		return "invalid integer literal"
	default:
		return fmt.Sprintf("diagnostic_kind_%d", int(k))
	}
}

// Diagnostic is a non-fatal problem found while parsing.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Token   token.Token
}

func (d Diagnostic) Error() string  { return d.Message }
func (d Diagnostic) String() string { return d.Message }

// Diagnostics is the ordered list of problems recorded during a parse.
type Diagnostics []Diagnostic

// HasErrors reports whether anything was recorded.
func (ds Diagnostics) HasErrors() bool { return len(ds) > 0 }

// Strings returns the messages in the order they were recorded.
func (ds Diagnostics) Strings() []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Message
	}
	return out
}

// Err folds the diagnostics into one error, or returns nil when there are
// none.
func (ds Diagnostics) Err() error {
	var result *multierror.Error
	for _, d := range ds {
		result = multierror.Append(result, d)
	}
	return result.ErrorOrNil()
}

func expectationMessage(want token.Kind, got token.Token) string {
	return fmt.Sprintf("expected next token to be %s, got %s instead", want, got.Kind)
}

func noPrefixMessage(tok token.Token) string {
	return fmt.Sprintf("no prefix parse function for %s found", tok.Kind)
}

func illegalTokenMessage(tok token.Token) string {
	return fmt.Sprintf("illegal token %q", tok.Literal)
}

func integerLiteralMessage(tok token.Token) string {
	return fmt.Sprintf("could not parse %q as integer", tok.Literal)
}
