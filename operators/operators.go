// Package operators defines the binary operator values carried by expression
// nodes. Operators are plain comparable values: the renderer decides
// parenthesization from their precedence, and an operator marked
// self-precedent may directly follow itself without added grouping (this is
// what lets col -> 'a' -> 'b' render without parentheses).
package operators

// Operator is a binary SQL operator tag. The zero value is not a valid
// operator.
type Operator struct {
	Symbol        string
	Precedence    int
	SelfPrecedent bool
}

// New constructs an operator with an explicit precedence and self-precedence.
func New(symbol string, precedence int, selfPrecedent bool) Operator {
	return Operator{Symbol: symbol, Precedence: precedence, SelfPrecedent: selfPrecedent}
}

// Named constructs an ad-hoc operator from its symbol alone. Ad-hoc operators
// get the lowest precedence, so the renderer groups their operands whenever
// those operands are themselves compound. The jsonb membership predicates are
// built this way rather than as fixed registry entries.
func Named(symbol string) Operator {
	return Operator{Symbol: symbol}
}

// Fixed general-purpose operators used by the query builder and the
// concatenation fallback.
var (
	Eq = New("=", 5, false)
	Ne = New("!=", 5, false)
	Gt = New(">", 5, false)
	Ge = New(">=", 5, false)
	Lt = New("<", 5, false)
	Le = New("<=", 5, false)

	Concat = New("||", 6, false)

	And = New("AND", 3, true)
	Or  = New("OR", 2, true)
)
