// Package sqltypes defines the result-type vocabulary shared by the
// expression algebra: the TypeEngine interface, the built-in scalar types,
// and the index-key-to-result-type map consulted when a document column is
// subscripted.
package sqltypes

// TypeEngine is the declared SQL-side type of an expression. Implementations
// are immutable after construction and safe for concurrent use.
type TypeEngine interface {
	// Name returns the database engine's native name for the type.
	Name() string
}

type scalarType struct {
	name string
}

func (t scalarType) Name() string { return t.name }

// Built-in scalar types. Expressions produced by the text coercion declare
// Text; predicate expressions declare Boolean. Integer and Float exist so an
// IndexMap can declare a non-document result for a known key.
var (
	Text    TypeEngine = scalarType{name: "text"}
	Boolean TypeEngine = scalarType{name: "boolean"}
	Integer TypeEngine = scalarType{name: "integer"}
	Float   TypeEngine = scalarType{name: "double precision"}
)

type sameType struct{}

func (sameType) Name() string { return "<same type>" }

// SameType is the sentinel result type meaning "the indexed column's own
// type". An IndexMap lookup that misses resolves to SameType, and the
// comparator substitutes the concrete document type for it.
var SameType TypeEngine = sameType{}

// AnyKey is the wildcard IndexMap entry matching every index key that has no
// exact entry of its own.
const AnyKey = "*"

// IndexMap declares the result type of an index operation per key. Keys are
// the rendered literal form of the index: the scalar text for single keys,
// the "{k1, k2}" form for paths. The zero value behaves as {AnyKey: SameType}.
type IndexMap map[string]TypeEngine

// Lookup resolves the declared result type for a rendered index key. Order:
// exact entry, then the AnyKey wildcard, then SameType.
func (m IndexMap) Lookup(key string) TypeEngine {
	if t, ok := m[key]; ok {
		return t
	}
	if t, ok := m[AnyKey]; ok {
		return t
	}
	return SameType
}
