// internal/membership/repository.go
//
// Storage access for `usuarios_programas`.
package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/store"
)

const columns = `
        id, usuario_id, programa_id, role_id, data_vinculacao,
        data_desvinculacao, status, observacoes, created_at, updated_at`

// Create inserts a new row and returns it re-read.
func Create(ctx context.Context, db *sqlx.DB, row Membership) (*Membership, error) {
	const q = `
        INSERT INTO usuarios_programas
               (usuario_id, programa_id, role_id, data_vinculacao,
                data_desvinculacao, status, observacoes)
        VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, q,
		row.UserID, row.ProgramID, row.RoleID, row.LinkedAt,
		store.NullDate(row.UnlinkedAt), row.Status, row.Notes,
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

// ByID fetches one row, ErrNotFound when the id matches nothing.
func ByID(ctx context.Context, db *sqlx.DB, id int64) (*Membership, error) {
	const q = `
        SELECT ` + columns + `
        FROM   usuarios_programas
        WHERE  id = ?`

	var rec Membership
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Filter narrows List; nil members are skipped.
type Filter struct {
	UserID    *int64
	ProgramID *int64
}

// List returns one page ordered by data_vinculacao (newest first).
func List(ctx context.Context, db *sqlx.DB, f Filter, limit, offset int) ([]Membership, int, error) {
	where, args := "", []any{}
	if f.UserID != nil {
		where += " AND usuario_id = ?"
		args = append(args, *f.UserID)
	}
	if f.ProgramID != nil {
		where += " AND programa_id = ?"
		args = append(args, *f.ProgramID)
	}
	if where != "" {
		where = " WHERE" + where[4:]
	}

	q := "SELECT " + columns + " FROM usuarios_programas" + where +
		" ORDER BY data_vinculacao DESC, id LIMIT ? OFFSET ?"
	rows := []Membership{}
	if err := db.SelectContext(ctx, &rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM usuarios_programas"+where, args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies a resolved changeset and returns the row re-read.
func Update(ctx context.Context, db *sqlx.DB, id int64, cs patch.Changeset) (*Membership, error) {
	if cs.Empty() {
		return ByID(ctx, db, id)
	}

	q, args := store.UpdateQuery("usuarios_programas", cs, id)
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, store.Translate(err, uniqueKeys)
	}
	return ByID(ctx, db, id)
}

// Delete removes the row outright.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	const q = `DELETE FROM usuarios_programas WHERE id = ?`

	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return store.Translate(err, uniqueKeys)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
