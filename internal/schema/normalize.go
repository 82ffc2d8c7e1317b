package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Normalize converts an arbitrary Go configuration tree into the canonical
// JSON shapes the validator understands: map[string]any, []any, string,
// bool, nil and json.Number.
func Normalize(config map[string]any) (map[string]any, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON text into canonical shapes. The document must be an
// object.
func Parse(data []byte) (map[string]any, error) {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("failed to decode configuration: document is null")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to decode configuration: document is %T, not an object", v)
	}
	return m, nil
}
