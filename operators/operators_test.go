package operators

import "testing"

func TestNew(t *testing.T) {
	op := New("->", 5, true)

	if op.Symbol != "->" {
		t.Errorf("Expected symbol '->', got %q", op.Symbol)
	}
	if op.Precedence != 5 {
		t.Errorf("Expected precedence 5, got %d", op.Precedence)
	}
	if !op.SelfPrecedent {
		t.Error("Expected self-precedent operator")
	}
}

func TestNamed(t *testing.T) {
	op := Named("?")

	if op.Symbol != "?" {
		t.Errorf("Expected symbol '?', got %q", op.Symbol)
	}
	if op.Precedence != 0 {
		t.Errorf("Expected lowest precedence for named operator, got %d", op.Precedence)
	}
	if op.SelfPrecedent {
		t.Error("Named operators must not be self-precedent")
	}
}

func TestOperatorsAreComparable(t *testing.T) {
	if Named("?") != Named("?") {
		t.Error("Identical named operators should compare equal")
	}
	if Eq == Ne {
		t.Error("Distinct operators should not compare equal")
	}
}

func TestFixedOperators(t *testing.T) {
	tests := []struct {
		op            Operator
		symbol        string
		precedence    int
		selfPrecedent bool
	}{
		{Eq, "=", 5, false},
		{Ne, "!=", 5, false},
		{Gt, ">", 5, false},
		{Ge, ">=", 5, false},
		{Lt, "<", 5, false},
		{Le, "<=", 5, false},
		{Concat, "||", 6, false},
		{And, "AND", 3, true},
		{Or, "OR", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			if tt.op.Symbol != tt.symbol {
				t.Errorf("Expected symbol %q, got %q", tt.symbol, tt.op.Symbol)
			}
			if tt.op.Precedence != tt.precedence {
				t.Errorf("Expected precedence %d, got %d", tt.precedence, tt.op.Precedence)
			}
			if tt.op.SelfPrecedent != tt.selfPrecedent {
				t.Errorf("Expected self-precedent %v, got %v", tt.selfPrecedent, tt.op.SelfPrecedent)
			}
		})
	}
}
