package expr

import (
	"errors"
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "string key", value: "a"},
		{name: "int key", value: 5},
		{name: "float key", value: 1.5},
		{name: "map key rejected", value: map[string]any{}, wantErr: true},
		{name: "nil key rejected", value: nil, wantErr: true},
		{name: "bool key rejected", value: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Key(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIndexKey) {
					t.Fatalf("Expected ErrInvalidIndexKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Key(%v) failed: %v", tt.value, err)
			}
			if k.Value != tt.value {
				t.Errorf("Expected value %v, got %v", tt.value, k.Value)
			}
		})
	}
}

func TestPath(t *testing.T) {
	p, err := Path("a", "b", 3)
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if len(p.Keys) != 3 {
		t.Fatalf("Expected 3 path elements, got %d", len(p.Keys))
	}
	if got := p.Rendered(); got != "{a, b, 3}" {
		t.Errorf("Expected rendered path '{a, b, 3}', got %q", got)
	}
}

func TestPathMustNotBeEmpty(t *testing.T) {
	_, err := Path()
	if !errors.Is(err, ErrInvalidIndexKey) {
		t.Fatalf("Expected ErrInvalidIndexKey for empty path, got %v", err)
	}
}

func TestPathRejectsNonScalarElements(t *testing.T) {
	_, err := Path("a", []string{"nested"})
	if !errors.Is(err, ErrInvalidIndexKey) {
		t.Fatalf("Expected ErrInvalidIndexKey, got %v", err)
	}
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantPath bool
		wantErr  bool
	}{
		{name: "scalar string", value: "a"},
		{name: "scalar int", value: 7},
		{name: "any slice", value: []any{"a", "b"}, wantPath: true},
		{name: "string slice", value: []string{"a", "b"}, wantPath: true},
		{name: "int slice", value: []int{1, 2}, wantPath: true},
		{name: "empty slice", value: []any{}, wantErr: true},
		{name: "struct rejected", value: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := KeyOf(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidIndexKey) {
					t.Fatalf("Expected ErrInvalidIndexKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("KeyOf(%v) failed: %v", tt.value, err)
			}
			_, isPath := k.(PathKey)
			if isPath != tt.wantPath {
				t.Errorf("Expected path=%v, got %T", tt.wantPath, k)
			}
		})
	}
}

func TestKeyOfPassesThroughIndexKeys(t *testing.T) {
	p, _ := Path("a", "b")
	k, err := KeyOf(p)
	if err != nil {
		t.Fatalf("KeyOf failed: %v", err)
	}
	if _, ok := k.(PathKey); !ok {
		t.Errorf("Expected PathKey to pass through, got %T", k)
	}
}
