package parser

import (
	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Kind {
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement handles `let <ident> = <expr>;`. A missing name yields
// an expression statement wrapping the placeholder since there is nothing to
// bind; a missing '=' keeps the binding and substitutes the value.
func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.curToken
	if bad, ok := p.expectPeek(token.IDENT); !ok {
		return ast.NewExpressionStatement(tok, bad)
	}
	name := ast.NewIdentifier(p.curToken)

	if bad, ok := p.expectPeek(token.ASSIGN); !ok {
		return ast.NewLetStatement(tok, name, bad)
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	p.skipOptionalSemicolon()
	return ast.NewLetStatement(tok, name, value)
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(LOWEST)
	p.skipOptionalSemicolon()
	return ast.NewReturnStatement(tok, value)
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	p.skipOptionalSemicolon()
	return ast.NewExpressionStatement(tok, expr)
}
