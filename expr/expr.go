// Package expr defines the immutable expression tree produced by the typed
// query algebra and consumed by the SQL renderer. Nodes are created by
// indexing, coercion, or predicate construction and never mutated afterwards,
// so they may be shared freely across goroutines.
package expr

import (
	"github.com/conduit-lang/pgexpr/operators"
	"github.com/conduit-lang/pgexpr/sqltypes"
)

// Expression is a node with a declared SQL-side result type.
type Expression interface {
	Term
	Type() sqltypes.TypeEngine
}

// Term is anything that can stand on the right side of a Binary node:
// a nested Expression, an inline Literal, or a BindValue parameter.
type Term interface {
	isTerm()
}

// Column is a leaf node referring to a table column.
type Column struct {
	Table     string
	Name      string
	ValueType sqltypes.TypeEngine
}

// Col constructs a column reference of the given type.
func Col(table, name string, t sqltypes.TypeEngine) *Column {
	return &Column{Table: table, Name: name, ValueType: t}
}

func (c *Column) Type() sqltypes.TypeEngine { return c.ValueType }
func (c *Column) isTerm()                   {}

// Literal is a value rendered inline into the SQL text, such as the rendered
// index of a subscript operation.
type Literal struct {
	Value any
}

func (Literal) isTerm() {}

// BindValue is a value rendered as a positional parameter and shipped through
// the bind path. ValueType selects the bind processor applied to Value.
type BindValue struct {
	Value     any
	ValueType sqltypes.TypeEngine
}

func (BindValue) isTerm() {}

// Binary is an operator application. Right is a Literal for index
// operations, a BindValue for literal comparison operands, or a nested
// Expression.
type Binary struct {
	Left       Expression
	Op         operators.Operator
	Right      Term
	ResultType sqltypes.TypeEngine
}

// Apply builds a Binary node. It is the generic "apply named operator"
// primitive: comparators use it for every operator they resolve, including
// the ad-hoc membership predicates.
func Apply(left Expression, op operators.Operator, right Term, result sqltypes.TypeEngine) *Binary {
	return &Binary{Left: left, Op: op, Right: right, ResultType: result}
}

func (b *Binary) Type() sqltypes.TypeEngine { return b.ResultType }
func (b *Binary) isTerm()                   {}
