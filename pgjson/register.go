package pgjson

import (
	"fmt"

	"github.com/conduit-lang/pgexpr/sqltypes"
)

// Register installs the default json and jsonb descriptors into a native-type
// registry. Call it once during setup; a second call against the same
// registry reports a configuration error.
func Register(r *sqltypes.Registry) error {
	if err := r.Register("json", NewJSON()); err != nil {
		return fmt.Errorf("failed to register json type: %w", err)
	}
	if err := r.Register("jsonb", NewJSONB()); err != nil {
		return fmt.Errorf("failed to register jsonb type: %w", err)
	}
	return nil
}
