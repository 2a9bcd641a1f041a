package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Patch is a partial update: field name to new value. A field missing from
// the map is left unchanged.
type Patch map[string]string

// Get returns the value for field and whether it was supplied.
func (p Patch) Get(field string) (string, bool) {
	v, ok := p[field]
	return v, ok
}

// Apply copies the value for field into dst when the field was supplied.
func (p Patch) Apply(field string, dst *string) {
	if v, ok := p[field]; ok {
		*dst = v
	}
}

// DecodePatch parses a JSON object into a Patch. Keys outside allowed are
// rejected, null values count as absent and every other value must be a
// string.
func DecodePatch(data []byte, allowed []string) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}

	patch := make(Patch, len(raw))
	for key, value := range raw {
		if !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("unknown field %q", key)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("field %q must be a string", key)
		}
		patch[key] = s
	}
	return patch, nil
}
