// internal/user/repository_test.go
//
// Run: go test ./internal/user -v

package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

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

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "senha_hash", "nome_completo", "role_id", "ativo",
		"created_at", "updated_at",
	})
}

func TestCreateTranslatesDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO usuarios").
		WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry 'ana@uepb.edu.br' for key 'usuarios.uq_usuario_email'",
		})

	_, err := Create(context.Background(), db, User{Email: "ana@uepb.edu.br"})
	var ce *store.ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConstraintError, got %v", err)
	}
	if ce.Field != "email" || ce.Value != "ana@uepb.edu.br" {
		t.Fatalf("unexpected hint: %+v", ce)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE usuarios")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := Delete(context.Background(), db, 5); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("soft delete must UPDATE, never DELETE: %v", err)
	}
}

func TestDeleteAlreadyInactiveIsNoop(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE usuarios")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM\s+usuarios`).
		WithArgs(int64(5)).
		WillReturnRows(userRows().AddRow(
			5, "ana@uepb.edu.br", "$2a$10$x", nil, 1, false,
			time.Now(), time.Now(),
		))

	if err := Delete(context.Background(), db, 5); err != nil {
		t.Fatalf("repeat delete should be a no-op, got %v", err)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE usuarios")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM\s+usuarios`).
		WithArgs(int64(99)).
		WillReturnRows(userRows())

	if err := Delete(context.Background(), db, 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListFiltersByActive(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM usuarios WHERE ativo = \?`).
		WithArgs(true, 20, 0).
		WillReturnRows(userRows().AddRow(
			1, "ana@uepb.edu.br", "$2a$10$x", nil, 1, true,
			time.Now(), time.Now(),
		))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM usuarios WHERE ativo = \?`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	active := true
	rows, total, err := List(context.Background(), db, &active, 20, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(rows) != 1 || total != 1 {
		t.Fatalf("rows=%d total=%d", len(rows), total)
	}
}
