// Package render compiles an expression tree into SQL text with positional
// $n parameters. Grouping is decided from operator precedence: a compound
// left operand is parenthesized when its operator binds looser, or equally
// tight without being a self-precedent repeat of the same operator.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conduit-lang/pgexpr/expr"
	"github.com/conduit-lang/pgexpr/operators"
	"github.com/conduit-lang/pgexpr/sqltypes"
)

// Param is one positional parameter produced during rendering. Type carries
// the declared type so the bind path can pick the right processor.
type Param struct {
	Value any
	Type  sqltypes.TypeEngine
}

// Renderer accumulates parameters across several Render calls so a statement
// assembled from multiple expressions numbers its placeholders consistently.
type Renderer struct {
	params []Param
}

// NewRenderer creates a renderer with an empty parameter list.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Params returns the parameters collected so far, in placeholder order.
func (r *Renderer) Params() []Param {
	return r.params
}

// Render compiles one expression to SQL text, appending its parameters to the
// renderer's list.
func (r *Renderer) Render(e expr.Expression) (string, error) {
	return r.renderExpr(e)
}

// SQL compiles a single expression in one shot.
func SQL(e expr.Expression) (string, []Param, error) {
	r := NewRenderer()
	text, err := r.Render(e)
	if err != nil {
		return "", nil, err
	}
	return text, r.params, nil
}

func (r *Renderer) renderExpr(e expr.Expression) (string, error) {
	switch n := e.(type) {
	case *expr.Column:
		return renderColumn(n), nil
	case *expr.Binary:
		return r.renderBinary(n)
	default:
		return "", fmt.Errorf("cannot render expression node %T", e)
	}
}

func (r *Renderer) renderBinary(b *expr.Binary) (string, error) {
	left, err := r.renderExpr(b.Left)
	if err != nil {
		return "", err
	}
	if needsGrouping(b.Left, b.Op, true) {
		left = "(" + left + ")"
	}

	right, err := r.renderTerm(b.Right, b.Op)
	if err != nil {
		return "", err
	}

	return left + " " + b.Op.Symbol + " " + right, nil
}

func (r *Renderer) renderTerm(t expr.Term, op operators.Operator) (string, error) {
	switch n := t.(type) {
	case expr.Literal:
		return renderLiteral(n.Value)
	case expr.BindValue:
		r.params = append(r.params, Param{Value: n.Value, Type: n.ValueType})
		return "$" + strconv.Itoa(len(r.params)), nil
	case expr.Expression:
		text, err := r.renderExpr(n)
		if err != nil {
			return "", err
		}
		if needsGrouping(n, op, false) {
			text = "(" + text + ")"
		}
		return text, nil
	default:
		return "", fmt.Errorf("cannot render operand %T", t)
	}
}

// needsGrouping reports whether a compound operand must be parenthesized
// under the enclosing operator. A left operand chained with the same
// self-precedent operator stays bare; everything else groups on looser or
// equal binding.
func needsGrouping(operand expr.Expression, enclosing operators.Operator, isLeft bool) bool {
	inner, ok := operand.(*expr.Binary)
	if !ok {
		return false
	}
	if isLeft && inner.Op == enclosing && enclosing.SelfPrecedent {
		return false
	}
	return inner.Op.Precedence <= enclosing.Precedence
}

func renderColumn(c *expr.Column) string {
	if c.Table != "" {
		return quoteIdent(c.Table) + "." + quoteIdent(c.Name)
	}
	return quoteIdent(c.Name)
}

// quoteIdent quotes an identifier only when it needs it; plain lower-case
// identifiers render bare.
func quoteIdent(name string) string {
	for _, ch := range name {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_' {
			continue
		}
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

func renderLiteral(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprintf("%v", val), nil
	default:
		return "", fmt.Errorf("cannot render literal of type %T", v)
	}
}
