package sqltypes

import "testing"

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("text", Text); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	typ, ok := r.Lookup("text")
	if !ok {
		t.Fatal("Expected registered type to be found")
	}
	if typ != Text {
		t.Errorf("Expected Text, got %v", typ)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Error("Expected lookup miss for unregistered name")
	}
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("text", Text); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("text", Boolean); err == nil {
		t.Fatal("Expected error on duplicate registration")
	}

	// The original registration must survive the failed attempt.
	typ, _ := r.Lookup("text")
	if typ != Text {
		t.Errorf("Expected original registration to survive, got %v", typ)
	}
}

func TestRegistryCountAndClear(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("text", Text)
	_ = r.Register("boolean", Boolean)

	if r.Count() != 2 {
		t.Errorf("Expected 2 registered types, got %d", r.Count())
	}
	if len(r.Names()) != 2 {
		t.Errorf("Expected 2 names, got %d", len(r.Names()))
	}

	r.Clear()
	if r.Count() != 0 {
		t.Errorf("Expected empty registry after Clear, got %d", r.Count())
	}
}
