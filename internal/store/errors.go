// internal/store/errors.go
//
// Storage error taxonomy shared by every repository.
//
// Context
// -------
// Repositories never hand raw driver errors to the HTTP layer.  Every
// failure is folded into one of three shapes the handlers can branch on:
//
//	ErrNotFound          – the id matched no live row.
//	*ConstraintError     – MySQL rejected the write (unique, FK, or
//	                       check rule).
//	anything else        – unexpected, becomes a 500 upstream.
//
// Constraint detection keys off go-sql-driver's typed MySQLError, so a
// wrapped error chain still matches via errors.As.  For duplicate keys we
// additionally parse the engine message to recover which value collided
// and on which index; the parse is best-effort and a miss simply leaves
// the hint fields empty.
//
// Notes
// -----
// • Error 1062 is ER_DUP_ENTRY, 1452 is ER_NO_REFERENCED_ROW_2, 1451 is
//   ER_ROW_IS_REFERENCED_2, and 3819 is ER_CHECK_CONSTRAINT_VIOLATED.
// • Oxford commas, two spaces after periods.
package store

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup, update, or delete matches no row.
var ErrNotFound = errors.New("store: record not found")

// ConstraintKind distinguishes the two rule classes MySQL enforces for us.
type ConstraintKind string

const (
	KindDuplicate  ConstraintKind = "duplicate_key"
	KindForeignKey ConstraintKind = "foreign_key"
	KindCheck      ConstraintKind = "check"
)

// ConstraintError describes a write the database refused.  Field and
// Value are best-effort extractions and may be empty; Code is the MySQL
// errno, which is safe to surface (it carries no row data).
type ConstraintError struct {
	Kind  ConstraintKind
	Code  uint16
	Key   string // index name, e.g. "uq_instituicao_codigo"
	Field string // wire field mapped from Key, e.g. "codigo"
	Value string // offending value, e.g. "UEPB"
	cause error
}

func (e *ConstraintError) Error() string {
	return "store: constraint violation on " + e.Key
}

func (e *ConstraintError) Unwrap() error { return e.cause }

// IsConstraint reports whether err is (or wraps) a ConstraintError.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

// dupEntryRe matches "Duplicate entry 'UEPB' for key 'tbl.uq_name'".
// MariaDB omits the table prefix; both forms are accepted.
var dupEntryRe = regexp.MustCompile(`Duplicate entry '(.*)' for key '([^']+)'`)

// checkRe matches "Check constraint 'ck_docente_datas' is violated".
var checkRe = regexp.MustCompile(`Check constraint '([^']+)' is violated`)

// Translate folds a driver error into the package taxonomy.  keyFields
// maps unique index names to the wire field they guard; unknown indexes
// still produce a ConstraintError, just without a field hint.  Non-MySQL
// errors pass through unchanged.
func Translate(err error, keyFields map[string]string) error {
	if err == nil {
		return nil
	}

	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}

	switch me.Number {
	case 1062:
		ce := &ConstraintError{Kind: KindDuplicate, Code: me.Number, cause: err}
		if m := dupEntryRe.FindStringSubmatch(me.Message); m != nil {
			ce.Value = m[1]
			ce.Key = indexName(m[2])
			ce.Field = keyFields[ce.Key]
		}
		return ce
	case 1451, 1452:
		return &ConstraintError{Kind: KindForeignKey, Code: me.Number, cause: err}
	case 3819:
		ce := &ConstraintError{Kind: KindCheck, Code: me.Number, cause: err}
		if m := checkRe.FindStringSubmatch(me.Message); m != nil {
			ce.Key = m[1]
		}
		return ce
	}
	return err
}

// indexName strips an optional "table." prefix from a key reference.
func indexName(key string) string {
	if i := strings.LastIndexByte(key, '.'); i != -1 {
		return key[i+1:]
	}
	return key
}
