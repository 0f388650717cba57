// internal/role/repository.go
//
// Storage access for `roles`.  Delete is soft, mirroring users.
package role

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/store"
)

const columns = `
        id, nome, descricao, nivel_acesso, permissoes, ativo,
        created_at, updated_at`

// Create inserts a new row and returns it re-read.
func Create(ctx context.Context, db *sqlx.DB, row Role) (*Role, error) {
	const q = `
        INSERT INTO roles (nome, descricao, nivel_acesso, permissoes, ativo)
        VALUES (?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, q,
		row.Name, row.Description, row.AccessLevel, []byte(row.Permissions),
		row.Active,
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
func ByID(ctx context.Context, db *sqlx.DB, id int64) (*Role, error) {
	const q = `
        SELECT ` + columns + `
        FROM   roles
        WHERE  id = ?`

	var rec Role
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns one page ordered by nivel_acesso then nome, optionally
// filtered by ativo.
func List(ctx context.Context, db *sqlx.DB, active *bool, limit, offset int) ([]Role, int, error) {
	where, args := "", []any{}
	if active != nil {
		where = " WHERE ativo = ?"
		args = append(args, *active)
	}

	q := "SELECT " + columns + " FROM roles" + where +
		" ORDER BY nivel_acesso DESC, nome LIMIT ? OFFSET ?"
	rows := []Role{}
	if err := db.SelectContext(ctx, &rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM roles"+where, args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies a resolved changeset and returns the row re-read.
func Update(ctx context.Context, db *sqlx.DB, id int64, cs patch.Changeset) (*Role, error) {
	if cs.Empty() {
		return ByID(ctx, db, id)
	}

	q, args := store.UpdateQuery("roles", cs, id)
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, store.Translate(err, uniqueKeys)
	}
	return ByID(ctx, db, id)
}

// Delete deactivates the row, with the same ambiguity handling as the
// user repository.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	const q = `
        UPDATE roles
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
