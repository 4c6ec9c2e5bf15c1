package pgjson

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestBindNullMarker(t *testing.T) {
	bind := NewJSON().BindProcessor(CodecConfig{})

	v, err := bind(Null)
	require.NoError(t, err)
	assert.Nil(t, v, "the explicit NULL marker always persists SQL NULL")
}

func TestBindNilPolicy(t *testing.T) {
	// Default policy: nil persists as the encoded "null" literal.
	bind := NewJSON().BindProcessor(CodecConfig{})
	v, err := bind(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", v)

	// NoneAsNull: nil persists as SQL NULL.
	bind = NewJSON(WithNoneAsNull()).BindProcessor(CodecConfig{})
	v, err = bind(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestBindEncodesTextPayload(t *testing.T) {
	bind := NewJSON().BindProcessor(CodecConfig{})

	v, err := bind(map[string]any{"key1": "value1"})
	require.NoError(t, err)
	assert.Equal(t, `{"key1":"value1"}`, v)
}

func TestResultNull(t *testing.T) {
	result := NewJSON().ResultProcessor(CodecConfig{})

	v, err := result(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRoundTrip(t *testing.T) {
	typ := NewJSONB()
	bind := typ.BindProcessor(CodecConfig{})
	result := typ.ResultProcessor(CodecConfig{})

	// Values in the codec's native domain: numbers decode as float64.
	values := []any{
		map[string]any{"a": float64(1), "b": "two"},
		[]any{float64(1), "x", true},
		"plain text",
		float64(42),
		float64(1.5),
		true,
		false,
	}

	for _, v := range values {
		t.Run(fmt.Sprintf("%T", v), func(t *testing.T) {
			payload, err := bind(v)
			require.NoError(t, err)
			back, err := result(payload)
			require.NoError(t, err)
			assert.Equal(t, v, back)
		})
	}
}

func TestResultAcceptsBytes(t *testing.T) {
	result := NewJSON().ResultProcessor(CodecConfig{})

	v, err := result([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)
}

func TestResultRejectsUnexpectedPayload(t *testing.T) {
	result := NewJSON().ResultProcessor(CodecConfig{})

	_, err := result(12345)
	assert.Error(t, err)
}

func TestBytesPayload(t *testing.T) {
	typ := NewJSON()
	cfg := CodecConfig{BytesPayload: true}
	bind := typ.BindProcessor(cfg)

	v, err := bind("hello")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"hello"`), v)

	result := typ.ResultProcessor(cfg)
	back, err := result(v)
	require.NoError(t, err)
	assert.Equal(t, "hello", back)
}

func TestBytesPayloadWithDeclaredEncoding(t *testing.T) {
	typ := NewJSON()
	cfg := CodecConfig{BytesPayload: true, Encoding: charmap.ISO8859_1}

	bind := typ.BindProcessor(cfg)
	v, err := bind("café")
	require.NoError(t, err)

	raw, ok := v.([]byte)
	require.True(t, ok)
	assert.Contains(t, string(raw), "\xe9", "payload should be Latin-1 encoded")

	result := typ.ResultProcessor(cfg)
	back, err := result(raw)
	require.NoError(t, err)
	assert.Equal(t, "café", back)
}

func TestSerializerOverride(t *testing.T) {
	calls := 0
	cfg := CodecConfig{
		Serializer: func(v any) ([]byte, error) {
			calls++
			return json.Marshal(v)
		},
	}

	bind := NewJSON().BindProcessor(cfg)
	_, err := bind("x")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDeserializerOverride(t *testing.T) {
	cfg := CodecConfig{
		Deserializer: func(b []byte) (any, error) {
			return string(b), nil
		},
	}

	result := NewJSON().ResultProcessor(cfg)
	v, err := result(`{"raw": true}`)
	require.NoError(t, err)
	assert.Equal(t, `{"raw": true}`, v)
}

func TestRoundTripProperties(t *testing.T) {
	typ := NewJSONB()
	bind := typ.BindProcessor(CodecConfig{})
	result := typ.ResultProcessor(CodecConfig{})

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("string maps survive the round trip", prop.ForAll(
		func(m map[string]string) bool {
			doc := make(map[string]any, len(m))
			for k, v := range m {
				doc[k] = v
			}
			payload, err := bind(doc)
			if err != nil {
				return false
			}
			back, err := result(payload)
			if err != nil {
				return false
			}
			decoded, ok := back.(map[string]any)
			if !ok || len(decoded) != len(doc) {
				return len(doc) == 0 && err == nil
			}
			for k, v := range doc {
				if decoded[k] != v {
					return false
				}
			}
			return true
		},
		gen.MapOf(gen.Identifier(), gen.AlphaString()),
	))

	properties.Property("numeric arrays survive the round trip", prop.ForAll(
		func(ns []int64) bool {
			doc := make([]any, len(ns))
			for i, n := range ns {
				doc[i] = float64(n)
			}
			payload, err := bind(doc)
			if err != nil {
				return false
			}
			back, err := result(payload)
			if err != nil {
				return false
			}
			decoded, ok := back.([]any)
			if !ok {
				// An empty slice encodes to "[]" and decodes to an
				// empty []any; nil input is also acceptable here.
				return len(doc) == 0
			}
			if len(decoded) != len(doc) {
				return false
			}
			for i := range doc {
				if decoded[i] != doc[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(-1<<52, 1<<52)),
	))

	properties.TestingRun(t)
}
