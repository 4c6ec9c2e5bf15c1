// Package pgjson implements the Postgres JSON and JSONB column types for the
// expression algebra: subscripting a document column yields a typed
// sub-expression that can be chained, coerced to text for comparison, or (for
// jsonb) tested with containment and key-membership predicates. The package
// also provides the bind/result codec bridging in-memory values and the wire
// payload.
package pgjson

import (
	"fmt"

	"github.com/conduit-lang/pgexpr/expr"
	"github.com/conduit-lang/pgexpr/operators"
	"github.com/conduit-lang/pgexpr/sqltypes"
)

// The four index/text operators. Index and PathIdx produce a document result
// and may chain without parenthesization; AsText and AsTextPathIdx produce
// text and are terminal for this algebra.
var (
	IndexOp         = operators.New("->", 5, true)
	PathIdxOp       = operators.New("#>", 5, true)
	AsTextOp        = operators.New("->>", 5, false)
	AsTextPathIdxOp = operators.New("#>>", 5, false)
)

// Variant selects between the json and jsonb behavior of a type descriptor.
type Variant int

const (
	// VariantJSON is the plain json type: index and text-coercion operations
	// only.
	VariantJSON Variant = iota
	// VariantJSONB adds the membership predicates and overrides operator
	// adaptation.
	VariantJSONB
)

// JSONType is the column-type descriptor for json and jsonb columns. It is
// immutable once constructed and safe to share across goroutines.
type JSONType struct {
	variant    Variant
	noneAsNull bool
	indexMap   sqltypes.IndexMap
}

// Option configures a JSONType at construction.
type Option func(*JSONType)

// WithNoneAsNull makes the bind path persist an in-memory nil as SQL NULL
// instead of the encoded "null" literal.
func WithNoneAsNull() Option {
	return func(t *JSONType) { t.noneAsNull = true }
}

// WithIndexMap overrides the map from rendered index keys to declared result
// types. The default is {AnyKey: SameType}.
func WithIndexMap(m sqltypes.IndexMap) Option {
	return func(t *JSONType) { t.indexMap = m }
}

// NewJSON constructs a json type descriptor.
func NewJSON(opts ...Option) *JSONType {
	return newType(VariantJSON, opts)
}

// NewJSONB constructs a jsonb type descriptor.
func NewJSONB(opts ...Option) *JSONType {
	return newType(VariantJSONB, opts)
}

func newType(v Variant, opts []Option) *JSONType {
	t := &JSONType{
		variant:  v,
		indexMap: sqltypes.IndexMap{sqltypes.AnyKey: sqltypes.SameType},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the native storage type name used for schema reflection.
func (t *JSONType) Name() string {
	if t.variant == VariantJSONB {
		return "jsonb"
	}
	return "json"
}

// Variant reports whether this descriptor behaves as json or jsonb.
func (t *JSONType) Variant() Variant { return t.variant }

// NoneAsNull reports the NULL-persistence policy for in-memory nil values.
func (t *JSONType) NoneAsNull() bool { return t.noneAsNull }

// ResolveIndex implements the Indexable capability: a scalar key resolves to
// the -> operator with the key as-is, a path key to the #> operator with the
// "{k1, k2, ...}" literal. The declared result type comes from the index map,
// with SameType resolving back to this descriptor.
func (t *JSONType) ResolveIndex(key expr.IndexKey) (operators.Operator, expr.Literal, sqltypes.TypeEngine, error) {
	switch k := key.(type) {
	case expr.ScalarKey:
		rendered := fmt.Sprintf("%v", k.Value)
		return IndexOp, expr.Literal{Value: k.Value}, t.resolve(t.indexMap.Lookup(rendered)), nil
	case expr.PathKey:
		if len(k.Keys) == 0 {
			return operators.Operator{}, expr.Literal{}, nil,
				fmt.Errorf("%w: path must not be empty", expr.ErrInvalidIndexKey)
		}
		rendered := k.Rendered()
		return PathIdxOp, expr.Literal{Value: rendered}, t.resolve(t.indexMap.Lookup(rendered)), nil
	default:
		return operators.Operator{}, expr.Literal{}, nil,
			fmt.Errorf("%w: %T is not an index key", expr.ErrInvalidIndexKey, key)
	}
}

// AdaptConcat implements the Concatenable capability's default rule: the
// operator passes through and the result keeps the document type.
func (t *JSONType) AdaptConcat(op operators.Operator, other sqltypes.TypeEngine) (operators.Operator, sqltypes.TypeEngine) {
	return expr.AdaptConcatDefault(t, op, other)
}

// resolve substitutes the concrete descriptor for the SameType sentinel.
func (t *JSONType) resolve(declared sqltypes.TypeEngine) sqltypes.TypeEngine {
	if declared == sqltypes.SameType {
		return t
	}
	return declared
}
