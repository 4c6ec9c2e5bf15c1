package query

import (
	"github.com/conduit-lang/pgexpr/expr"
	"github.com/conduit-lang/pgexpr/operators"
	"github.com/conduit-lang/pgexpr/sqltypes"
)

// Comparison helpers turning an expression and an operand into a
// Boolean-typed predicate for WHERE clauses. A literal operand becomes a bind
// parameter carrying the expression's own declared type.

// Eq builds an equality predicate.
func Eq(e expr.Expression, v any) *expr.Binary { return compare(e, operators.Eq, v) }

// Ne builds an inequality predicate.
func Ne(e expr.Expression, v any) *expr.Binary { return compare(e, operators.Ne, v) }

// Gt builds a greater-than predicate.
func Gt(e expr.Expression, v any) *expr.Binary { return compare(e, operators.Gt, v) }

// Ge builds a greater-or-equal predicate.
func Ge(e expr.Expression, v any) *expr.Binary { return compare(e, operators.Ge, v) }

// Lt builds a less-than predicate.
func Lt(e expr.Expression, v any) *expr.Binary { return compare(e, operators.Lt, v) }

// Le builds a less-or-equal predicate.
func Le(e expr.Expression, v any) *expr.Binary { return compare(e, operators.Le, v) }

func compare(e expr.Expression, op operators.Operator, v any) *expr.Binary {
	var term expr.Term
	if other, ok := v.(expr.Expression); ok {
		term = other
	} else {
		term = expr.BindValue{Value: v, ValueType: e.Type()}
	}
	return expr.Apply(e, op, term, sqltypes.Boolean)
}
