// internal/user/repository.go
//
// Storage access for `usuarios`.
//
// Notes
// -----
// • Delete is soft: ativo flips to 0 and the row stays, so docentes and
//   vínculos keep their FK target.  A second delete of the same id is a
//   no-op success, not a 404.
package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/store"
)

const columns = `
        id, email, senha_hash, nome_completo, role_id, ativo,
        created_at, updated_at`

// Create inserts a new row and returns it re-read.
func Create(ctx context.Context, db *sqlx.DB, row User) (*User, error) {
	const q = `
        INSERT INTO usuarios (email, senha_hash, nome_completo, role_id, ativo)
        VALUES (?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, q,
		row.Email, row.PasswordHash, row.FullName, row.RoleID, row.Active,
	)
	if err != nil {
		return nil, store.Translate(err, uniqueKeys)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return ByID(ctx, db, id)
}

// ByID fetches one row regardless of ativo; this is an admin surface
// and inactive accounts remain addressable.
func ByID(ctx context.Context, db *sqlx.DB, id int64) (*User, error) {
	const q = `
        SELECT ` + columns + `
        FROM   usuarios
        WHERE  id = ?`

	var rec User
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ByEmail fetches one row by its unique email.
func ByEmail(ctx context.Context, db *sqlx.DB, email string) (*User, error) {
	const q = `
        SELECT ` + columns + `
        FROM   usuarios
        WHERE  email = ?`

	var rec User
	if err := db.GetContext(ctx, &rec, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns one page ordered by email, optionally filtered by ativo.
func List(ctx context.Context, db *sqlx.DB, active *bool, limit, offset int) ([]User, int, error) {
	where, args := "", []any{}
	if active != nil {
		where = " WHERE ativo = ?"
		args = append(args, *active)
	}

	q := "SELECT " + columns + " FROM usuarios" + where +
		" ORDER BY email LIMIT ? OFFSET ?"
	rows := []User{}
	if err := db.SelectContext(ctx, &rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM usuarios"+where, args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies a resolved changeset and returns the row re-read.
func Update(ctx context.Context, db *sqlx.DB, id int64, cs patch.Changeset) (*User, error) {
	if cs.Empty() {
		return ByID(ctx, db, id)
	}

	q, args := store.UpdateQuery("usuarios", cs, id)
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, store.Translate(err, uniqueKeys)
	}
	return ByID(ctx, db, id)
}

// Delete deactivates the row.  Zero affected rows is ambiguous between
// a missing id and an already-inactive account, so it is settled with a
// read.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	const q = `
        UPDATE usuarios
        SET    ativo = 0, updated_at = UTC_TIMESTAMP()
        WHERE  id = ?`

	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n > 0 {
		return nil
	}
	_, err = ByID(ctx, db, id)
	return err
}
