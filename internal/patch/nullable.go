// internal/patch/nullable.go
//
// Helpers that turn optional Go values into changeset entries, mapping
// nil pointers and empty JSON blocks to SQL NULL.
package patch

import "encoding/json"

// NullableString unwraps s, nil becoming SQL NULL.
func NullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// NullableInt unwraps i, nil becoming SQL NULL.
func NullableInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

// NullableJSON maps an absent or literal-null JSON block to SQL NULL;
// anything else is stored as raw bytes.
func NullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return []byte(raw)
}
