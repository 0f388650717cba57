// internal/faculty/repository.go
//
// Storage access for `docentes`.
package faculty

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/store"
)

const columns = `
        id, usuario_id, programa_id, matricula, categoria, regime_trabalho,
        tipo_vinculo, data_vinculacao, data_desvinculacao, h_index,
        total_publicacoes, status, motivo_desligamento,
        created_at, updated_at`

// Create inserts a new row and returns it re-read.
func Create(ctx context.Context, db *sqlx.DB, row Faculty) (*Faculty, error) {
	const q = `
        INSERT INTO docentes
               (usuario_id, programa_id, matricula, categoria, regime_trabalho,
                tipo_vinculo, data_vinculacao, data_desvinculacao, h_index,
                total_publicacoes, status, motivo_desligamento)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, q,
		row.UserID, row.ProgramID, row.Registration, row.Category,
		row.WorkRegime, row.BondType, row.LinkedAt,
		store.NullDate(row.UnlinkedAt), row.HIndex, row.Publications,
		row.Status, row.LeavingReason,
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
func ByID(ctx context.Context, db *sqlx.DB, id int64) (*Faculty, error) {
	const q = `
        SELECT ` + columns + `
        FROM   docentes
        WHERE  id = ?`

	var rec Faculty
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns one page ordered by data_vinculacao (newest first),
// optionally scoped to one program.
func List(ctx context.Context, db *sqlx.DB, programID *int64, limit, offset int) ([]Faculty, int, error) {
	where, args := "", []any{}
	if programID != nil {
		where = " WHERE programa_id = ?"
		args = append(args, *programID)
	}

	q := "SELECT " + columns + " FROM docentes" + where +
		" ORDER BY data_vinculacao DESC, id LIMIT ? OFFSET ?"
	rows := []Faculty{}
	if err := db.SelectContext(ctx, &rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM docentes"+where, args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies a resolved changeset and returns the row re-read.
func Update(ctx context.Context, db *sqlx.DB, id int64, cs patch.Changeset) (*Faculty, error) {
	if cs.Empty() {
		return ByID(ctx, db, id)
	}

	q, args := store.UpdateQuery("docentes", cs, id)
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, store.Translate(err, uniqueKeys)
	}
	return ByID(ctx, db, id)
}

// Delete removes the row outright.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	const q = `DELETE FROM docentes WHERE id = ?`

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
