package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/pgexpr/expr"
	"github.com/conduit-lang/pgexpr/pgjson"
)

// exprFlags holds the flags shared by the render and query commands and
// builds the column expression they describe.
type exprFlags struct {
	table     string
	column    string
	jsonb     bool
	keys      []string
	path      []string
	astext    bool
	predicate string
	value     string
}

func (f *exprFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.table, "table", "t", "", "table name (required)")
	cmd.Flags().StringVarP(&f.column, "column", "c", "", "document column name (required)")
	cmd.Flags().BoolVar(&f.jsonb, "jsonb", false, "treat the column as jsonb instead of json")
	cmd.Flags().StringArrayVarP(&f.keys, "key", "k", nil, "scalar index key, may repeat to chain")
	cmd.Flags().StringSliceVar(&f.path, "path", nil, "comma-separated path index keys")
	cmd.Flags().BoolVar(&f.astext, "astext", false, "coerce the indexed expression to text")
	cmd.Flags().StringVar(&f.predicate, "predicate", "", "jsonb predicate: has_key, has_all, has_any, contains, contained_by")
	cmd.Flags().StringVar(&f.value, "value", "", "predicate operand (JSON or plain text)")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("column")
}

// build resolves the flags into an expression: index chain first, then either
// the text coercion or a membership predicate on the result.
func (f *exprFlags) build() (expr.Expression, error) {
	var t *pgjson.JSONType
	if f.jsonb {
		t = pgjson.NewJSONB()
	} else {
		t = pgjson.NewJSON()
	}

	var current expr.Expression = expr.Col(f.table, f.column, t)

	var ix *pgjson.Indexed
	for _, k := range f.keys {
		var err error
		if ix == nil {
			ix, err = t.Comparator(current).IndexBy(k)
		} else {
			ix, err = ix.IndexBy(k)
		}
		if err != nil {
			return nil, err
		}
	}
	if len(f.path) > 0 {
		elems := make([]any, len(f.path))
		for i, p := range f.path {
			elems[i] = p
		}
		key, err := expr.Path(elems...)
		if err != nil {
			return nil, err
		}
		if ix == nil {
			ix, err = t.Comparator(current).Index(key)
		} else {
			ix, err = ix.Index(key)
		}
		if err != nil {
			return nil, err
		}
	}
	if ix != nil {
		current = ix.Expr()
	}

	if f.predicate != "" {
		if f.astext {
			return nil, fmt.Errorf("--astext and --predicate are mutually exclusive")
		}
		cmp := t.Comparator(current)
		operand := parseOperand(f.value)
		switch f.predicate {
		case "has_key":
			return orErr(cmp.HasKey(operand))
		case "has_all":
			return orErr(cmp.HasAll(operand))
		case "has_any":
			return orErr(cmp.HasAny(operand))
		case "contains":
			return orErr(cmp.Contains(operand))
		case "contained_by":
			return orErr(cmp.ContainedBy(operand))
		default:
			return nil, fmt.Errorf("unknown predicate: %s", f.predicate)
		}
	}

	if f.astext {
		if ix == nil {
			return nil, fmt.Errorf("--astext requires at least one --key or --path")
		}
		return ix.AsText(), nil
	}

	return current, nil
}

func orErr(b *expr.Binary, err error) (expr.Expression, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// parseOperand decodes the --value flag as JSON when possible, falling back
// to the raw string.
func parseOperand(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}
