package parser

import (
	"fmt"

	"monkey/interpreter-go/pkg/token"
)

// Precedence is an operator's binding strength. Higher binds tighter.
type Precedence int

const (
	LOWEST      Precedence = iota + 1
	EQUALS                 // == !=
	LESSGREATER            // < >
	SUM                    // + -
	PRODUCT                // * /
	PREFIX                 // -x !x
	CALL                   // f(x)
)

var precedences = map[token.Kind]Precedence{
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
}

// PrecedenceOf returns the infix binding strength of kind, or LOWEST when
// the kind is not an infix operator.
func PrecedenceOf(kind token.Kind) Precedence {
	if p, ok := precedences[kind]; ok {
		return p
	}
	return LOWEST
}

func (p Precedence) String() string {
	switch p {
	case LOWEST:
		return "LOWEST"
	case EQUALS:
		return "EQUALS"
	case LESSGREATER:
		return "LESSGREATER"
	case SUM:
		return "SUM"
	case PRODUCT:
		return "PRODUCT"
	case PREFIX:
		return "PREFIX"
	case CALL:
		return "CALL"
	default:
		return fmt.Sprintf("Precedence(%d)", int(p))
	}
}
