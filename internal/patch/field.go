// internal/patch/field.go
//
// Tri-state JSON field for partial updates.
//
// Context
// -------
// A merge-patch body distinguishes three situations per field: the key is
// absent (leave the column alone), the key is present with a JSON null
// (clear the column), or the key is present with a value (assign it).
// Go's encoding/json collapses the first two into the zero value, so the
// handlers decode PATCH bodies into structs whose fields are Field[T].
// The decoder only calls UnmarshalJSON for keys that actually appear in
// the body, which is exactly the presence signal we need.
//
// Notes
// -----
// • Field is a value type; the zero value means "not submitted."
// • Oxford commas, two spaces after periods.
package patch

import "encoding/json"

// Field records whether a key was submitted, whether it was an explicit
// null, and the decoded value when one was given.
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Value constructs a submitted field holding v.  Used by tests and by
// PUT payload conversion.
func Value[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// Null constructs a submitted field carrying an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// Present reports whether the key appeared in the request body at all.
func (f Field[T]) Present() bool { return f.present }

// IsNull reports whether the key was submitted as an explicit null.
func (f Field[T]) IsNull() bool { return f.present && f.null }

// Get returns the decoded value and whether a non-null value was
// submitted.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.present && !f.null
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// so reaching this method at all flips the presence bit.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.present = true
	if string(b) == "null" {
		f.null = true
		return nil
	}
	return json.Unmarshal(b, &f.value)
}

// MarshalJSON round-trips the tri-state for logging and tests.  Absent
// fields encode as null as well; callers should not serialize patch
// payloads in responses.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.present || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
