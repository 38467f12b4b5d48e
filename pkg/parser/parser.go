// Package parser builds an ast.Program from a token stream using Pratt
// (top-down operator precedence) parsing.
//
// Parsing never aborts. Structural problems are recorded as diagnostics and
// an *ast.ErrorExpression is substituted at the recovery point, so the rest
// of the input is still consumed and later problems are still reported.
// Callers decide success by inspecting the returned Diagnostics.
//
//	p := parser.New(lexer.New(src))
//	program, diags := p.ParseProgram()
//	if diags.HasErrors() { ... }
package parser

import (
	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/lexer"
	"monkey/interpreter-go/pkg/token"
)

// Parser holds the two-token window over a lexer plus the diagnostics
// recorded so far. A Parser owns its lexer and is good for one ParseProgram
// call.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	diagnostics Diagnostics
}

// New takes ownership of l and primes the current and lookahead tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// ParseString is shorthand for parsing src with a fresh lexer and parser.
func ParseString(src string) (*ast.Program, Diagnostics) {
	return New(lexer.New(src)).ParseProgram()
}

// ParseProgram consumes the token stream through EOF.
func (p *Parser) ParseProgram() (*ast.Program, Diagnostics) {
	var statements []ast.Statement
	for !p.curTokenIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
		p.nextToken()
	}
	return ast.NewProgram(statements), p.diagnostics
}

// Diagnostics returns what has been recorded so far.
func (p *Parser) Diagnostics() Diagnostics {
	return p.diagnostics
}

// Errors returns the recorded diagnostics as plain strings.
func (p *Parser) Errors() []string {
	return p.diagnostics.Strings()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}
