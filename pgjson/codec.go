package pgjson

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"golang.org/x/text/encoding"
)

type sqlNull struct{}

// Null is the explicit "persist as SQL NULL" marker. Binding it always
// produces NULL, independent of the NoneAsNull policy.
var Null any = sqlNull{}

// CodecConfig carries the per-connection codec configuration. Zero value:
// encoding/json for both directions, text payloads.
type CodecConfig struct {
	// Serializer overrides the default JSON encoder on the bind path.
	Serializer func(any) ([]byte, error)
	// Deserializer overrides the default JSON decoder on the result path.
	Deserializer func([]byte) (any, error)
	// BytesPayload marks a connection that ships byte payloads rather than
	// text; the payload is then converted through Encoding.
	BytesPayload bool
	// Encoding is the connection's declared text encoding, consulted only
	// for byte payloads. Nil means the payload bytes pass through as UTF-8.
	Encoding encoding.Encoding
}

// BindFunc converts one in-memory value into its wire payload. A nil
// driver.Value means SQL NULL.
type BindFunc func(value any) (driver.Value, error)

// ResultFunc converts one raw wire value back into an in-memory value. SQL
// NULL comes back as nil.
type ResultFunc func(raw any) (any, error)

// BindProcessor builds the bind-side transform for one connection
// configuration. The returned function is pure and safe for concurrent reuse
// across binds, provided the serializer itself is.
func (t *JSONType) BindProcessor(cfg CodecConfig) BindFunc {
	serialize := cfg.Serializer
	if serialize == nil {
		serialize = json.Marshal
	}
	noneAsNull := t.noneAsNull

	return func(value any) (driver.Value, error) {
		if _, isNull := value.(sqlNull); isNull || (value == nil && noneAsNull) {
			return nil, nil
		}
		payload, err := serialize(value)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s value: %w", t.Name(), err)
		}
		if cfg.BytesPayload {
			if cfg.Encoding != nil {
				encoded, err := cfg.Encoding.NewEncoder().Bytes(payload)
				if err != nil {
					return nil, fmt.Errorf("failed to encode %s payload: %w", t.Name(), err)
				}
				return encoded, nil
			}
			return payload, nil
		}
		return string(payload), nil
	}
}

// ResultProcessor builds the result-side transform for one connection
// configuration. The returned function is pure and safe for concurrent reuse
// across row materializations.
func (t *JSONType) ResultProcessor(cfg CodecConfig) ResultFunc {
	deserialize := cfg.Deserializer
	if deserialize == nil {
		deserialize = func(b []byte) (any, error) {
			var v any
			if err := json.Unmarshal(b, &v); err != nil {
				return nil, err
			}
			return v, nil
		}
	}

	return func(raw any) (any, error) {
		if raw == nil {
			return nil, nil
		}
		var payload []byte
		switch r := raw.(type) {
		case []byte:
			payload = r
			if cfg.Encoding != nil {
				decoded, err := cfg.Encoding.NewDecoder().Bytes(r)
				if err != nil {
					return nil, fmt.Errorf("failed to decode %s payload: %w", t.Name(), err)
				}
				payload = decoded
			}
		case string:
			payload = []byte(r)
		default:
			return nil, fmt.Errorf("unexpected %s payload type %T", t.Name(), raw)
		}
		value, err := deserialize(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize %s value: %w", t.Name(), err)
		}
		return value, nil
	}
}
