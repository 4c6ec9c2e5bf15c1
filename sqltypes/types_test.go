package sqltypes

import "testing"

func TestScalarTypeNames(t *testing.T) {
	tests := []struct {
		typ  TypeEngine
		name string
	}{
		{Text, "text"},
		{Boolean, "boolean"},
		{Integer, "integer"},
		{Float, "double precision"},
	}

	for _, tt := range tests {
		if got := tt.typ.Name(); got != tt.name {
			t.Errorf("Expected name %q, got %q", tt.name, got)
		}
	}
}

func TestIndexMapLookup(t *testing.T) {
	m := IndexMap{
		"count":  Integer,
		AnyKey:   Text,
		"{a, b}": Boolean,
	}

	tests := []struct {
		key  string
		want TypeEngine
	}{
		{"count", Integer},
		{"{a, b}", Boolean},
		{"missing", Text}, // falls back to AnyKey
	}

	for _, tt := range tests {
		if got := m.Lookup(tt.key); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIndexMapLookupDefaultsToSameType(t *testing.T) {
	var m IndexMap

	if got := m.Lookup("anything"); got != SameType {
		t.Errorf("Expected SameType for zero-value map, got %v", got)
	}

	m = IndexMap{"known": Integer}
	if got := m.Lookup("unknown"); got != SameType {
		t.Errorf("Expected SameType when no AnyKey entry exists, got %v", got)
	}
}
