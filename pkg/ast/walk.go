package ast

// Walk visits node and its descendants depth-first in source order. When
// visit returns false the children of that node are skipped.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, visit)
		}
	case *LetStatement:
		if n.Name != nil {
			Walk(n.Name, visit)
		}
		Walk(n.Value, visit)
	case *ReturnStatement:
		Walk(n.ReturnValue, visit)
	case *ExpressionStatement:
		Walk(n.Expression, visit)
	case *PrefixExpression:
		Walk(n.Right, visit)
	case *InfixExpression:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *BlockExpression:
		for _, stmt := range n.Statements {
			Walk(stmt, visit)
		}
	case *IfExpression:
		Walk(n.Condition, visit)
		if n.Consequence != nil {
			Walk(n.Consequence, visit)
		}
		if n.Alternative != nil {
			Walk(n.Alternative, visit)
		}
	case *FunctionLiteral:
		for _, param := range n.Parameters {
			Walk(param, visit)
		}
		if n.Body != nil {
			Walk(n.Body, visit)
		}
	case *CallExpression:
		Walk(n.Function, visit)
		for _, arg := range n.Arguments {
			Walk(arg, visit)
		}
	case *Identifier, *IntegerLiteral, *Boolean, *ErrorExpression:
	}
}

// Placeholders returns every recovery node under root in source order.
func Placeholders(root Node) []*ErrorExpression {
	var out []*ErrorExpression
	Walk(root, func(n Node) bool {
		if errExpr, ok := n.(*ErrorExpression); ok {
			out = append(out, errExpr)
		}
		return true
	})
	return out
}
