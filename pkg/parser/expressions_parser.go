package parser

import (
	"monkey/interpreter-go/pkg/ast"
	"monkey/interpreter-go/pkg/token"
)

// prefixRule and infixRule name the handler a token kind dispatches to.
// Kinds absent from the tables have no handler.
type prefixRule uint8

const (
	prefixNone prefixRule = iota
	prefixIdentifier
	prefixInteger
	prefixBoolean
	prefixOperator
	prefixGrouped
	prefixIf
	prefixFunction
)

type infixRule uint8

const (
	infixNone infixRule = iota
	infixBinary
	infixCall
)

var prefixRules = map[token.Kind]prefixRule{
	token.IDENT:    prefixIdentifier,
	token.INT:      prefixInteger,
	token.TRUE:     prefixBoolean,
	token.FALSE:    prefixBoolean,
	token.BANG:     prefixOperator,
	token.MINUS:    prefixOperator,
	token.LPAREN:   prefixGrouped,
	token.IF:       prefixIf,
	token.FUNCTION: prefixFunction,
}

var infixRules = map[token.Kind]infixRule{
	token.PLUS:     infixBinary,
	token.MINUS:    infixBinary,
	token.SLASH:    infixBinary,
	token.ASTERISK: infixBinary,
	token.EQ:       infixBinary,
	token.NOT_EQ:   infixBinary,
	token.LT:       infixBinary,
	token.GT:       infixBinary,
	token.LPAREN:   infixCall,
}

// parseExpression parses one expression starting at the current token and
// stops before the first operator that binds no tighter than minPrec.
func (p *Parser) parseExpression(minPrec Precedence) ast.Expression {
	left, found := p.parsePrefix()
	if !found {
		return left
	}

	for !p.peekTokenIs(token.SEMICOLON) && minPrec < p.peekPrecedence() {
		rule := infixRules[p.peekToken.Kind]
		if rule == infixNone {
			return left
		}
		p.nextToken()
		left = p.parseInfix(rule, left)
	}
	return left
}

// parsePrefix runs the prefix handler for the current token. found is false
// when no handler exists; a handler that fails still reports found so the
// caller keeps applying infix operators to its placeholder.
func (p *Parser) parsePrefix() (expr ast.Expression, found bool) {
	switch prefixRules[p.curToken.Kind] {
	case prefixIdentifier:
		return ast.NewIdentifier(p.curToken), true
	case prefixInteger:
		return p.parseIntegerLiteral(), true
	case prefixBoolean:
		return p.parseBoolean(), true
	case prefixOperator:
		return p.parsePrefixExpression(), true
	case prefixGrouped:
		return p.parseGroupedExpression(), true
	case prefixIf:
		return p.parseIfExpression(), true
	case prefixFunction:
		return p.parseFunctionLiteral(), true
	}
	if p.curTokenIs(token.ILLEGAL) {
		return p.record(LexError, p.curToken, illegalTokenMessage(p.curToken)), false
	}
	return p.record(NoPrefixHandler, p.curToken, noPrefixMessage(p.curToken)), false
}

func (p *Parser) parseInfix(rule infixRule, left ast.Expression) ast.Expression {
	switch rule {
	case infixCall:
		return p.parseCallExpression(left)
	default:
		return p.parseInfixExpression(left)
	}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	return ast.NewPrefixExpression(tok, tok.Literal, right)
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return ast.NewInfixExpression(tok, left, tok.Literal, right)
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if bad, ok := p.expectPeek(token.RPAREN); !ok {
		return bad
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.curToken
	if bad, ok := p.expectPeek(token.LPAREN); !ok {
		return bad
	}
	p.nextToken()
	condition := p.parseExpression(LOWEST)

	if bad, ok := p.expectPeek(token.RPAREN); !ok {
		return bad
	}
	if bad, ok := p.expectPeek(token.LBRACE); !ok {
		return bad
	}
	consequence := p.parseBlockExpression()

	var alternative *ast.BlockExpression
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if bad, ok := p.expectPeek(token.LBRACE); !ok {
			return bad
		}
		alternative = p.parseBlockExpression()
	}
	return ast.NewIfExpression(tok, condition, consequence, alternative)
}

// parseBlockExpression expects the current token to be '{' and leaves the
// cursor on the closing '}'. An unterminated block ends at EOF with a
// placeholder statement appended.
func (p *Parser) parseBlockExpression() *ast.BlockExpression {
	tok := p.curToken
	var statements []ast.Statement
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			bad := p.record(ParseExpectation, p.curToken, expectationMessage(token.RBRACE, p.curToken))
			statements = append(statements, ast.NewExpressionStatement(p.curToken, bad))
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
		p.nextToken()
	}
	return ast.NewBlockExpression(tok, statements)
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.curToken
	if bad, ok := p.expectPeek(token.LPAREN); !ok {
		return bad
	}
	params, bad := p.parseFunctionParameters()
	if bad != nil {
		return bad
	}
	if bad, ok := p.expectPeek(token.LBRACE); !ok {
		return bad
	}
	return ast.NewFunctionLiteral(tok, params, p.parseBlockExpression())
}

// parseFunctionParameters reads IDENT (',' IDENT)* ')' with the cursor
// starting on '('.
func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, *ast.ErrorExpression) {
	var params []*ast.Identifier
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, nil
	}

	if bad, ok := p.expectPeek(token.IDENT); !ok {
		return nil, bad
	}
	params = append(params, ast.NewIdentifier(p.curToken))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if bad, ok := p.expectPeek(token.IDENT); !ok {
			return nil, bad
		}
		params = append(params, ast.NewIdentifier(p.curToken))
	}

	if bad, ok := p.expectPeek(token.RPAREN); !ok {
		return nil, bad
	}
	return params, nil
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	tok := p.curToken
	args, bad := p.parseExpressionList(token.RPAREN)
	if bad != nil {
		return bad
	}
	return ast.NewCallExpression(tok, function, args)
}

// parseExpressionList reads comma-separated expressions up to end, with the
// cursor starting on the opening delimiter.
func (p *Parser) parseExpressionList(end token.Kind) ([]ast.Expression, *ast.ErrorExpression) {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, nil
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if bad, ok := p.expectPeek(end); !ok {
		return nil, bad
	}
	return list, nil
}
