package expr

import (
	"github.com/conduit-lang/pgexpr/operators"
	"github.com/conduit-lang/pgexpr/sqltypes"
)

// Indexable is the capability a type descriptor implements so its columns can
// be subscripted. ResolveIndex turns an IndexKey into the concrete operator,
// the rendered index literal, and the declared result type of the new
// sub-expression.
type Indexable interface {
	sqltypes.TypeEngine
	ResolveIndex(key IndexKey) (operators.Operator, Literal, sqltypes.TypeEngine, error)
}

// Concatenable is the capability supplying the default adaptation rule for
// the concatenation operator: used as the fallback whenever a comparator has
// no more specific rule for an operator.
type Concatenable interface {
	sqltypes.TypeEngine
	AdaptConcat(op operators.Operator, other sqltypes.TypeEngine) (operators.Operator, sqltypes.TypeEngine)
}

// AdaptConcatDefault is the stock Concatenable rule: the operator passes
// through unchanged and the result keeps the receiver's own type.
func AdaptConcatDefault(receiver sqltypes.TypeEngine, op operators.Operator, _ sqltypes.TypeEngine) (operators.Operator, sqltypes.TypeEngine) {
	return op, receiver
}
