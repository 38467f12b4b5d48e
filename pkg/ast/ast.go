package ast

import (
	"strings"

	"monkey/interpreter-go/pkg/token"
)

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeLetStatement        NodeType = "LetStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeBoolean             NodeType = "Boolean"
	NodePrefixExpression    NodeType = "PrefixExpression"
	NodeInfixExpression     NodeType = "InfixExpression"
	NodeIfExpression        NodeType = "IfExpression"
	NodeBlockExpression     NodeType = "BlockExpression"
	NodeFunctionLiteral     NodeType = "FunctionLiteral"
	NodeCallExpression      NodeType = "CallExpression"
	NodeErrorExpression     NodeType = "ErrorExpression"
)

// Node is implemented by every tree node. String renders the node back to
// source-like text with normalized parenthesization.
type Node interface {
	NodeType() NodeType
	TokenLiteral() string
	String() string
	isNode()
}

type nodeImpl struct {
	Type  NodeType    `json:"type"`
	Token token.Token `json:"-"`
}

func newNodeImpl(kind NodeType, tok token.Token) nodeImpl {
	return nodeImpl{Type: kind, Token: tok}
}

func (n nodeImpl) NodeType() NodeType       { return n.Type }
func (n nodeImpl) TokenLiteral() string     { return n.Token.Literal }
func (n nodeImpl) OriginToken() token.Token { return n.Token }
func (nodeImpl) isNode()                    {}

// Marker interfaces. Both sets are closed: only this package can add members.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program

type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram, token.Token{}), Statements: statements}
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
	}
	return b.String()
}

// Statements

type LetStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewLetStatement(tok token.Token, name *Identifier, value Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement, tok), Name: name, Value: value}
}

func (s *LetStatement) String() string {
	var b strings.Builder
	b.WriteString(s.TokenLiteral())
	b.WriteString(" ")
	b.WriteString(s.Name.String())
	b.WriteString(" = ")
	b.WriteString(s.Value.String())
	b.WriteString(";")
	return b.String()
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	ReturnValue Expression `json:"returnValue"`
}

func NewReturnStatement(tok token.Token, value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement, tok), ReturnValue: value}
}

func (s *ReturnStatement) String() string {
	return s.TokenLiteral() + " " + s.ReturnValue.String() + ";"
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(tok token.Token, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement, tok), Expression: expr}
}

func (s *ExpressionStatement) String() string { return s.Expression.String() }

// Identifier and literals

type Identifier struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewIdentifier(tok token.Token) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier, tok), Value: tok.Literal}
}

func (i *Identifier) String() string { return i.Value }

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(tok token.Token, value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral, tok), Value: value}
}

func (l *IntegerLiteral) String() string { return l.Token.Literal }

type Boolean struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBoolean(tok token.Token, value bool) *Boolean {
	return &Boolean{nodeImpl: newNodeImpl(NodeBoolean, tok), Value: value}
}

func (b *Boolean) String() string { return b.Token.Literal }

// Operators

type PrefixExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewPrefixExpression(tok token.Token, operator string, right Expression) *PrefixExpression {
	return &PrefixExpression{nodeImpl: newNodeImpl(NodePrefixExpression, tok), Operator: operator, Right: right}
}

func (e *PrefixExpression) String() string {
	return "(" + e.Operator + e.Right.String() + ")"
}

type InfixExpression struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator string     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewInfixExpression(tok token.Token, left Expression, operator string, right Expression) *InfixExpression {
	return &InfixExpression{nodeImpl: newNodeImpl(NodeInfixExpression, tok), Left: left, Operator: operator, Right: right}
}

func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// Control flow

type BlockExpression struct {
	nodeImpl
	expressionMarker

	Statements []Statement `json:"statements"`
}

func NewBlockExpression(tok token.Token, statements []Statement) *BlockExpression {
	return &BlockExpression{nodeImpl: newNodeImpl(NodeBlockExpression, tok), Statements: statements}
}

func (e *BlockExpression) String() string {
	var b strings.Builder
	for _, stmt := range e.Statements {
		b.WriteString(stmt.String())
	}
	return b.String()
}

// IfExpression keeps Alternative nil when the source has no else clause; an
// else with an empty body is a non-nil block with no statements.
type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition   Expression       `json:"condition"`
	Consequence *BlockExpression `json:"consequence"`
	Alternative *BlockExpression `json:"alternative,omitempty"`
}

func NewIfExpression(tok token.Token, condition Expression, consequence, alternative *BlockExpression) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression, tok), Condition: condition, Consequence: consequence, Alternative: alternative}
}

func (e *IfExpression) HasElse() bool { return e.Alternative != nil }

func (e *IfExpression) String() string {
	var b strings.Builder
	b.WriteString("if")
	b.WriteString(e.Condition.String())
	b.WriteString(" ")
	b.WriteString(e.Consequence.String())
	if e.Alternative != nil {
		b.WriteString(" else ")
		b.WriteString(e.Alternative.String())
	}
	return b.String()
}

// Functions

type FunctionLiteral struct {
	nodeImpl
	expressionMarker

	Parameters []*Identifier    `json:"parameters"`
	Body       *BlockExpression `json:"body"`
}

func NewFunctionLiteral(tok token.Token, params []*Identifier, body *BlockExpression) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral, tok), Parameters: params, Body: body}
}

func (e *FunctionLiteral) String() string {
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.String()
	}
	return e.TokenLiteral() + "(" + strings.Join(params, ",") + ")" + e.Body.String()
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Function  Expression   `json:"function"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(tok token.Token, function Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression, tok), Function: function, Arguments: args}
}

func (e *CallExpression) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = a.String()
	}
	return e.Function.String() + "(" + strings.Join(args, ",") + ")"
}

// Recovery

// ErrorExpression stands in for an expression the parser could not build.
// Message repeats the diagnostic recorded at the same point.
type ErrorExpression struct {
	nodeImpl
	expressionMarker

	Message string `json:"message"`
}

func NewErrorExpression(tok token.Token, message string) *ErrorExpression {
	return &ErrorExpression{nodeImpl: newNodeImpl(NodeErrorExpression, tok), Message: message}
}

func (e *ErrorExpression) String() string { return "<error>" }
