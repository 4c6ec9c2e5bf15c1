// Package query provides a fluent SELECT builder over the expression algebra:
// selected expressions and WHERE predicates are expression nodes, parameters
// run through the JSON codec's bind processors, and JSON result columns run
// through its result processors.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conduit-lang/pgexpr/expr"
	"github.com/conduit-lang/pgexpr/pgjson"
	"github.com/conduit-lang/pgexpr/render"
	"github.com/conduit-lang/pgexpr/sqltypes"
)

// condition is one WHERE predicate; Or selects the connector to the previous
// condition.
type condition struct {
	pred expr.Expression
	or   bool
}

// selectItem is one selected expression with its output column name.
type selectItem struct {
	e     expr.Expression
	alias string
}

// Builder assembles and executes a SELECT statement.
type Builder struct {
	table string
	db    *sql.DB
	codec pgjson.CodecConfig

	selects    []selectItem
	conditions []condition
	orderBy    []string
	limit      *int
	offset     *int
}

// New creates a builder for the given table. db may be nil when the builder
// is only used to render SQL.
func New(table string, db *sql.DB) *Builder {
	return &Builder{
		table:      table,
		db:         db,
		selects:    make([]selectItem, 0),
		conditions: make([]condition, 0),
		orderBy:    make([]string, 0),
	}
}

// WithCodec sets the connection codec configuration used for JSON bind
// parameters and result columns.
func (b *Builder) WithCodec(cfg pgjson.CodecConfig) *Builder {
	b.codec = cfg
	return b
}

// Select adds a column expression to the select list; its output name is the
// column name.
func (b *Builder) Select(c *expr.Column) *Builder {
	b.selects = append(b.selects, selectItem{e: c, alias: c.Name})
	return b
}

// SelectAs adds any expression to the select list under an explicit output
// name.
func (b *Builder) SelectAs(e expr.Expression, alias string) *Builder {
	b.selects = append(b.selects, selectItem{e: e, alias: alias})
	return b
}

// Where adds a predicate combined with AND.
func (b *Builder) Where(pred expr.Expression) *Builder {
	b.conditions = append(b.conditions, condition{pred: pred, or: false})
	return b
}

// OrWhere adds a predicate combined with OR.
func (b *Builder) OrWhere(pred expr.Expression) *Builder {
	b.conditions = append(b.conditions, condition{pred: pred, or: true})
	return b
}

// OrderBy adds an ORDER BY clause on a column name.
func (b *Builder) OrderBy(column string, direction string) *Builder {
	dir := strings.ToUpper(direction)
	if dir != "ASC" && dir != "DESC" {
		dir = "ASC"
	}
	b.orderBy = append(b.orderBy, fmt.Sprintf("%s %s", column, dir))
	return b
}

// Limit sets the LIMIT clause.
func (b *Builder) Limit(n int) *Builder {
	b.limit = &n
	return b
}

// Offset sets the OFFSET clause.
func (b *Builder) Offset(n int) *Builder {
	b.offset = &n
	return b
}

// ToSQL generates the SQL statement and its bind arguments. JSON-typed
// parameters are already passed through the bind processor.
func (b *Builder) ToSQL() (string, []any, error) {
	return b.toSQL("")
}

func (b *Builder) toSQL(selectOverride string) (string, []any, error) {
	var sb strings.Builder
	r := render.NewRenderer()

	sb.WriteString("SELECT ")
	switch {
	case selectOverride != "":
		sb.WriteString(selectOverride)
	case len(b.selects) == 0:
		sb.WriteString("*")
	default:
		parts := make([]string, 0, len(b.selects))
		for _, item := range b.selects {
			text, err := r.Render(item.e)
			if err != nil {
				return "", nil, fmt.Errorf("failed to render select expression: %w", err)
			}
			if c, ok := item.e.(*expr.Column); ok && c.Name == item.alias {
				parts = append(parts, text)
			} else {
				parts = append(parts, fmt.Sprintf("%s AS %s", text, item.alias))
			}
		}
		sb.WriteString(strings.Join(parts, ", "))
	}

	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if len(b.conditions) > 0 {
		sb.WriteString(" WHERE ")
		for i, cond := range b.conditions {
			if i > 0 {
				if cond.or {
					sb.WriteString(" OR ")
				} else {
					sb.WriteString(" AND ")
				}
			}
			text, err := r.Render(cond.pred)
			if err != nil {
				return "", nil, fmt.Errorf("failed to render condition: %w", err)
			}
			sb.WriteString(text)
		}
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	args, err := b.bindArgs(r.Params())
	if err != nil {
		return "", nil, err
	}

	if b.limit != nil {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)+1))
		args = append(args, *b.limit)
	}
	if b.offset != nil {
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)+1))
		args = append(args, *b.offset)
	}

	return sb.String(), args, nil
}

// bindArgs runs each parameter through the bind processor its declared type
// provides, leaving other values untouched.
func (b *Builder) bindArgs(params []render.Param) ([]any, error) {
	args := make([]any, len(params))
	binds := make(map[*pgjson.JSONType]pgjson.BindFunc)
	for i, p := range params {
		jt, ok := p.Type.(*pgjson.JSONType)
		if !ok {
			args[i] = p.Value
			continue
		}
		bind, cached := binds[jt]
		if !cached {
			bind = jt.BindProcessor(b.codec)
			binds[jt] = bind
		}
		v, err := bind(p.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to bind parameter %d: %w", i+1, err)
		}
		args[i] = v
	}
	return args, nil
}

// All executes the query and returns all matching rows, with JSON select
// columns decoded through the result processor.
func (b *Builder) All(ctx context.Context) ([]map[string]any, error) {
	stmt, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SQL: %w", err)
	}

	rows, err := b.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, ConvertDBError(err)
	}
	defer rows.Close()

	results, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan rows: %w", err)
	}

	if err := b.decodeResults(results); err != nil {
		return nil, err
	}
	return results, nil
}

// First executes the query and returns the first matching row.
func (b *Builder) First(ctx context.Context) (map[string]any, error) {
	b.Limit(1)
	results, err := b.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results[0], nil
}

// Count executes the query with a COUNT(*) select list.
func (b *Builder) Count(ctx context.Context) (int, error) {
	stmt, args, err := b.toSQL("COUNT(*)")
	if err != nil {
		return 0, fmt.Errorf("failed to generate SQL: %w", err)
	}

	var count int
	if err := b.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, ConvertDBError(err)
	}
	return count, nil
}

// Exists checks if any rows match the query.
func (b *Builder) Exists(ctx context.Context) (bool, error) {
	count, err := b.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// decodeResults applies result processors to select columns whose declared
// type provides one.
func (b *Builder) decodeResults(results []map[string]any) error {
	type decoder struct {
		alias string
		fn    pgjson.ResultFunc
	}
	decoders := make([]decoder, 0)
	for _, item := range b.selects {
		if jt, ok := resultType(item.e).(*pgjson.JSONType); ok {
			decoders = append(decoders, decoder{alias: item.alias, fn: jt.ResultProcessor(b.codec)})
		}
	}
	if len(decoders) == 0 {
		return nil
	}

	for _, record := range results {
		for _, d := range decoders {
			raw, ok := record[d.alias]
			if !ok {
				continue
			}
			value, err := d.fn(raw)
			if err != nil {
				return fmt.Errorf("failed to decode column %s: %w", d.alias, err)
			}
			record[d.alias] = value
		}
	}
	return nil
}

func resultType(e expr.Expression) sqltypes.TypeEngine {
	return e.Type()
}
