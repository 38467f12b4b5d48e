// Package runtime holds the value model an evaluator would produce. Nothing
// here evaluates programs; the shell only uses it to echo literal input.
package runtime

import (
	"fmt"
	"strconv"

	"monkey/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindNil
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindBool:
		return "BOOLEAN"
	case KindNil:
		return "NULL"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	Inspect() string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// IntegerValue is a signed 64-bit integer.
type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind      { return KindInteger }
func (v IntegerValue) Inspect() string { return strconv.FormatInt(v.Val, 10) }

// BoolValue is true or false.
type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind      { return KindBool }
func (v BoolValue) Inspect() string { return strconv.FormatBool(v.Val) }

// NilValue is the absence of a value; it inspects as null.
type NilValue struct{}

func (NilValue) Kind() Kind      { return KindNil }
func (NilValue) Inspect() string { return "null" }

//-----------------------------------------------------------------------------
// Literal conversion
//-----------------------------------------------------------------------------

// LiteralValue maps a literal node to the value it denotes. Any other
// expression, including a recovery placeholder, reports false.
func LiteralValue(expr ast.Expression) (Value, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return IntegerValue{Val: e.Value}, true
	case *ast.Boolean:
		return BoolValue{Val: e.Value}, true
	default:
		return nil, false
	}
}
