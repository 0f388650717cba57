// internal/program/repository_test.go
//
// Run: go test ./internal/program -v

package program

import (
	"context"
	"errors"
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

func programRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "instituicao_id", "codigo_capes", "nome", "sigla",
		"area_concentracao", "nivel", "modalidade", "inicio_funcionamento",
		"conceito_capes", "data_ultima_avaliacao", "trienio_avaliacao",
		"configuracoes", "status", "created_at", "updated_at",
	})
}

func TestListFiltersByInstitution(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM programas WHERE instituicao_id = \?`).
		WithArgs(int64(1), 20, 0).
		WillReturnRows(programRows().AddRow(
			10, 1, nil, "PPG em Ciências Farmacêuticas", "PPGCF", nil,
			"Mestrado", "Presencial", nil, nil, nil, nil,
			[]byte(`{}`), "Ativo", time.Now(), time.Now(),
		))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM programas WHERE instituicao_id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	instID := int64(1)
	rows, total, err := List(context.Background(), db, &instID, 20, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(rows) != 1 || total != 1 {
		t.Fatalf("rows=%d total=%d", len(rows), total)
	}
	if rows[0].Acronym != "PPGCF" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCreateTranslatesCompositeDuplicate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO programas").
		WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry '1-PPGCF' for key 'programas.uq_programa_instituicao_sigla'",
		})

	_, err := Create(context.Background(), db, Program{InstitutionID: 1, Acronym: "PPGCF"})
	var ce *store.ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConstraintError, got %v", err)
	}
	if ce.Field != "instituicao_id,sigla" || ce.Value != "1-PPGCF" {
		t.Fatalf("unexpected hint: %+v", ce)
	}
}

func TestCreateTranslatesMissingInstitution(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO programas").
		WillReturnError(&mysql.MySQLError{
			Number:  1452,
			Message: "Cannot add or update a child row: a foreign key constraint fails",
		})

	_, err := Create(context.Background(), db, Program{InstitutionID: 99})
	var ce *store.ConstraintError
	if !errors.As(err, &ce) || ce.Kind != store.KindForeignKey {
		t.Fatalf("want foreign-key ConstraintError, got %v", err)
	}
}

func TestUpdateSkipsWriteOnEmptyChangeset(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM\s+programas`).
		WithArgs(int64(10)).
		WillReturnRows(programRows().AddRow(
			10, 1, nil, "PPG em Ciências Farmacêuticas", "PPGCF", nil,
			"Mestrado", "Presencial", nil, nil, nil, nil,
			[]byte(`{}`), "Ativo", time.Now(), time.Now(),
		))

	if _, err := Update(context.Background(), db, 10, patch.Changeset{}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("an UPDATE must not be issued for an empty changeset: %v", err)
	}
}
