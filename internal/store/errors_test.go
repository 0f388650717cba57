// internal/store/errors_test.go
//
// Unit-tests for constraint translation.
//
// Run: go test ./internal/store -v

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

var instKeys = map[string]string{
	"uq_instituicao_codigo": "codigo",
	"uq_instituicao_sigla":  "sigla",
}

func TestTranslateDuplicateEntry(t *testing.T) {
	raw := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'UEPB' for key 'instituicoes.uq_instituicao_codigo'",
	}

	err := Translate(raw, instKeys)
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConstraintError, got %T", err)
	}
	if ce.Kind != KindDuplicate || ce.Code != 1062 {
		t.Fatalf("kind/code: %v/%d", ce.Kind, ce.Code)
	}
	if ce.Key != "uq_instituicao_codigo" || ce.Field != "codigo" || ce.Value != "UEPB" {
		t.Fatalf("hint: key=%q field=%q value=%q", ce.Key, ce.Field, ce.Value)
	}
}

func TestTranslateDuplicateWithoutTablePrefix(t *testing.T) {
	raw := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'UEPB' for key 'uq_instituicao_sigla'",
	}

	var ce *ConstraintError
	if !errors.As(Translate(raw, instKeys), &ce) {
		t.Fatalf("want ConstraintError")
	}
	if ce.Field != "sigla" || ce.Value != "UEPB" {
		t.Fatalf("hint: field=%q value=%q", ce.Field, ce.Value)
	}
}

func TestTranslateUnparsableMessageStillConflicts(t *testing.T) {
	raw := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

	var ce *ConstraintError
	if !errors.As(Translate(raw, instKeys), &ce) {
		t.Fatalf("want ConstraintError even without a hint")
	}
	if ce.Field != "" || ce.Value != "" {
		t.Fatalf("hint should be empty, got field=%q value=%q", ce.Field, ce.Value)
	}
}

func TestTranslateForeignKey(t *testing.T) {
	raw := &mysql.MySQLError{
		Number:  1452,
		Message: "Cannot add or update a child row: a foreign key constraint fails",
	}

	var ce *ConstraintError
	if !errors.As(Translate(raw, nil), &ce) {
		t.Fatalf("want ConstraintError")
	}
	if ce.Kind != KindForeignKey {
		t.Fatalf("kind: %v", ce.Kind)
	}
}

func TestTranslateCheckConstraint(t *testing.T) {
	raw := &mysql.MySQLError{
		Number:  3819,
		Message: "Check constraint 'ck_docente_datas' is violated.",
	}

	var ce *ConstraintError
	if !errors.As(Translate(raw, nil), &ce) {
		t.Fatalf("want ConstraintError")
	}
	if ce.Kind != KindCheck || ce.Key != "ck_docente_datas" {
		t.Fatalf("kind=%v key=%q", ce.Kind, ce.Key)
	}
}

func TestTranslateWrappedError(t *testing.T) {
	raw := fmt.Errorf("insert institution: %w", &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'X' for key 'uq_instituicao_codigo'",
	})
	if !IsConstraint(Translate(raw, instKeys)) {
		t.Fatalf("wrapped MySQLError should still translate")
	}
}

func TestTranslatePassesThroughOtherErrors(t *testing.T) {
	raw := errors.New("dial tcp: connection refused")
	if got := Translate(raw, nil); got != raw {
		t.Fatalf("unexpected rewrite: %v", got)
	}
	if Translate(nil, nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
