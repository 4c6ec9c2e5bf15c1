package expr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIndexKey is returned when an index key is neither a scalar nor a
// non-empty sequence of scalars. The failure happens at key construction,
// never later during resolution.
var ErrInvalidIndexKey = errors.New("invalid index key")

// IndexKey is the subscript of an index operation: either a single scalar or
// an ordered path of scalars descending multiple document levels at once.
type IndexKey interface {
	isIndexKey()
}

// ScalarKey indexes one document level by a text or numeric key.
type ScalarKey struct {
	Value any
}

func (ScalarKey) isIndexKey() {}

// PathKey indexes several document levels in one operation. It always holds
// at least one element.
type PathKey struct {
	Keys []ScalarKey
}

func (PathKey) isIndexKey() {}

// Rendered returns the path's literal text form: "{k1, k2, ..., kn}".
func (p PathKey) Rendered() string {
	parts := make([]string, len(p.Keys))
	for i, k := range p.Keys {
		parts[i] = fmt.Sprintf("%v", k.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Key constructs a scalar index key from a text or numeric value.
func Key(v any) (ScalarKey, error) {
	if !isScalar(v) {
		return ScalarKey{}, fmt.Errorf("%w: %T is not a text or numeric key", ErrInvalidIndexKey, v)
	}
	return ScalarKey{Value: v}, nil
}

// Path constructs a path key from one or more scalar values.
func Path(vs ...any) (PathKey, error) {
	if len(vs) == 0 {
		return PathKey{}, fmt.Errorf("%w: path must not be empty", ErrInvalidIndexKey)
	}
	keys := make([]ScalarKey, len(vs))
	for i, v := range vs {
		k, err := Key(v)
		if err != nil {
			return PathKey{}, err
		}
		keys[i] = k
	}
	return PathKey{Keys: keys}, nil
}

// KeyOf converts an arbitrary value into an IndexKey at the call boundary:
// scalars become ScalarKey, slices become PathKey. Everything else is a
// type-mismatch error, so the resolution algorithm itself never inspects
// shapes.
func KeyOf(v any) (IndexKey, error) {
	if isScalar(v) {
		return ScalarKey{Value: v}, nil
	}
	switch vs := v.(type) {
	case []any:
		return Path(vs...)
	case []string:
		elems := make([]any, len(vs))
		for i, s := range vs {
			elems[i] = s
		}
		return Path(elems...)
	case []int:
		elems := make([]any, len(vs))
		for i, n := range vs {
			elems[i] = n
		}
		return Path(elems...)
	case IndexKey:
		return vs, nil
	default:
		return nil, fmt.Errorf("%w: cannot index with %T", ErrInvalidIndexKey, v)
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
