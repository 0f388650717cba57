// internal/patch/changeset.go
//
// Changeset assembly for PUT and PATCH updates.
//
// Context
// -------
// A Changeset is the minimal set of column → value assignments that a
// repository applies to one row.  Payload types build it field by field:
// PUT payloads assign every mutable column, PATCH payloads consult the
// tri-state Field wrappers.  Columns never written to the changeset are
// left untouched by the store, and an empty changeset means the caller
// must skip the UPDATE entirely (no timestamp bump, idempotent).
//
// Immutable columns are simply never merged, so their presence in a
// request body is dropped without error.

package patch

import "fmt"

// Changeset maps column names to the values an UPDATE should assign.
// A nil value clears a nullable column.
type Changeset map[string]any

// Empty reports whether there is nothing to persist.
func (c Changeset) Empty() bool { return len(c) == 0 }

// Set unconditionally assigns col.  Used by PUT payloads, which carry a
// full validated value for every mutable column.
func (c Changeset) Set(col string, v any) { c[col] = v }

// NullError is raised when a merge-patch submits an explicit null for a
// column that cannot hold one.  The presentation layer turns it into a
// validation item naming the offending field.
type NullError struct {
	Field string // wire name of the offending key
}

func (e *NullError) Error() string {
	return fmt.Sprintf("field %q is not nullable", e.Field)
}

// Merge applies a tri-state field to a non-nullable column: absent keys
// are skipped, explicit nulls are rejected, and values are assigned.
func Merge[T any](c Changeset, col string, f Field[T]) error {
	if !f.Present() {
		return nil
	}
	if f.IsNull() {
		return &NullError{Field: col}
	}
	v, _ := f.Get()
	c[col] = v
	return nil
}

// MergeNullable applies a tri-state field to a nullable column.  An
// explicit null clears the column.
func MergeNullable[T any](c Changeset, col string, f Field[T]) {
	if !f.Present() {
		return
	}
	if f.IsNull() {
		c[col] = nil
		return
	}
	v, _ := f.Get()
	c[col] = v
}
