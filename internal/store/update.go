// internal/store/update.go
//
// Shared UPDATE statement builder for changeset-driven writes.
package store

import (
	"sort"
	"strings"

	"github.com/ppghub/ppghub/internal/patch"
)

// UpdateQuery renders "UPDATE <table> SET ... WHERE id = ?" from a
// non-empty changeset.  Columns are sorted so the statement is
// deterministic, and updated_at is always bumped engine-side.
func UpdateQuery(table string, cs patch.Changeset, id int64) (string, []any) {
	cols := make([]string, 0, len(cs))
	for col := range cs {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		set = append(set, col+" = ?")
		args = append(args, cs[col])
	}
	set = append(set, "updated_at = UTC_TIMESTAMP()")
	args = append(args, id)

	return "UPDATE " + table + " SET " + strings.Join(set, ", ") + " WHERE id = ?", args
}
