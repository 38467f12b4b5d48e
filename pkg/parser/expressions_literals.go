package parser

import (
	"strconv"

	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/token"
)

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		return p.record(InvalidIntegerLiteral, p.curToken, integerLiteralMessage(p.curToken))
	}
	return ast.NewIntegerLiteral(p.curToken, value)
}

func (p *Parser) parseBoolean() ast.Expression {
	return ast.NewBoolean(p.curToken, p.curTokenIs(token.TRUE))
}
