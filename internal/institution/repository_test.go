// internal/institution/repository_test.go
//
// Repository tests using sqlmock: SQL shape, not-found mapping, and
// constraint translation.
//
// Run: go test ./internal/institution -v

package institution

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/store"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func institutionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "codigo", "nome_completo", "nome_abreviado", "sigla", "tipo",
		"cnpj", "natureza_juridica", "endereco", "contatos", "website",
		"ativo", "created_at", "updated_at",
	})
}

func TestByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM\\s+instituicoes").
		WithArgs(int64(99)).
		WillReturnRows(institutionRows())

	_, err := ByID(context.Background(), db, 99)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpdateBuildsSortedSetClause(t *testing.T) {
	db, mock := newMockDB(t)

	cs := patch.Changeset{}
	cs.Set("sigla", "NV")
	cs.Set("nome_abreviado", "Nova")

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE instituicoes SET nome_abreviado = ?, sigla = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?",
	)).
		WithArgs("Nova", "NV", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM\\s+instituicoes").
		WithArgs(int64(7)).
		WillReturnRows(institutionRows().AddRow(
			7, "UEPB", "Universidade Estadual da Paraíba", "Nova", "NV",
			"Estadual", nil, nil, nil, nil, nil, true, time.Now(), time.Now(),
		))

	got, err := Update(context.Background(), db, 7, cs)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.ShortName != "Nova" || got.Acronym != "NV" {
		t.Fatalf("unexpected row: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpdateTranslatesDuplicateKey(t *testing.T) {
	db, mock := newMockDB(t)

	cs := patch.Changeset{}
	cs.Set("sigla", "UFPB")

	mock.ExpectExec("UPDATE instituicoes SET").
		WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry 'UFPB' for key 'instituicoes.uq_instituicao_sigla'",
		})

	_, err := Update(context.Background(), db, 7, cs)
	var ce *store.ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConstraintError, got %v", err)
	}
	if ce.Kind != store.KindDuplicate || ce.Field != "sigla" || ce.Value != "UFPB" {
		t.Fatalf("unexpected translation: %+v", ce)
	}
}

func TestUpdateEmptyChangesetOnlyReads(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM\\s+instituicoes").
		WithArgs(int64(7)).
		WillReturnRows(institutionRows().AddRow(
			7, "UEPB", "Universidade Estadual da Paraíba", "UEPB", "UEPB",
			"Estadual", nil, nil, nil, nil, nil, true, time.Now(), time.Now(),
		))

	if _, err := Update(context.Background(), db, 7, patch.Changeset{}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("an UPDATE must not be issued for an empty changeset: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM instituicoes WHERE id = ?")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := Delete(context.Background(), db, 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteTranslatesForeignKey(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM instituicoes WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnError(&mysql.MySQLError{
			Number:  1451,
			Message: "Cannot delete or update a parent row: a foreign key constraint fails",
		})

	err := Delete(context.Background(), db, 7)
	var ce *store.ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConstraintError, got %v", err)
	}
	if ce.Kind != store.KindForeignKey {
		t.Fatalf("unexpected kind: %+v", ce)
	}
}
