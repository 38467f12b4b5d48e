package parser

import (
	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/token"
)

func (p *Parser) curTokenIs(kind token.Kind) bool {
	return p.curToken.Kind == kind
}

func (p *Parser) peekTokenIs(kind token.Kind) bool {
	return p.peekToken.Kind == kind
}

func (p *Parser) peekPrecedence() Precedence {
	return PrecedenceOf(p.peekToken.Kind)
}

func (p *Parser) curPrecedence() Precedence {
	return PrecedenceOf(p.curToken.Kind)
}

// expectPeek advances when the lookahead has the wanted kind. Otherwise it
// records a ParseExpectation diagnostic, leaves the cursor alone, and returns
// the placeholder for the caller to hand back.
func (p *Parser) expectPeek(kind token.Kind) (*ast.ErrorExpression, bool) {
	if p.peekTokenIs(kind) {
		p.nextToken()
		return nil, true
	}
	return p.record(ParseExpectation, p.peekToken, expectationMessage(kind, p.peekToken)), false
}

// record appends a diagnostic and builds the matching placeholder.
func (p *Parser) record(kind DiagnosticKind, tok token.Token, message string) *ast.ErrorExpression {
	p.diagnostics = append(p.diagnostics, Diagnostic{Kind: kind, Message: message, Token: tok})
	return ast.NewErrorExpression(tok, message)
}

// skipOptionalSemicolon consumes a trailing ';' when one follows. Statements
// may omit it so single-line shell input parses.
func (p *Parser) skipOptionalSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}
