// internal/institution/repository.go
//
// Storage access for `instituicoes`.
//
// Context
// -------
// Package-level functions over *sqlx.DB, one per operation.  Every
// write funnels its error through store.Translate so the HTTP layer
// only ever sees the shared taxonomy (ErrNotFound, *ConstraintError,
// or an opaque error).  Updates are built from a changeset, with the
// column list sorted so the generated SQL is deterministic and the
// tests can assert on it.
//
// Notes
// -----
// • Institutions are hard-deleted; referencing rows block the delete
//   via FK and surface as a 409.
// • updated_at is bumped by the engine (UTC_TIMESTAMP()), never by the
//   application clock.
package institution

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/store"
)

const columns = `
        id, codigo, nome_completo, nome_abreviado, sigla, tipo,
        cnpj, natureza_juridica, endereco, contatos, website,
        ativo, created_at, updated_at`

// Create inserts a new row and returns it re-read, so generated columns
// (id, timestamps) reflect what the engine actually stored.
func Create(ctx context.Context, db *sqlx.DB, row Institution) (*Institution, error) {
	const q = `
        INSERT INTO instituicoes
               (codigo, nome_completo, nome_abreviado, sigla, tipo,
                cnpj, natureza_juridica, endereco, contatos, website, ativo)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, q,
		row.Code, row.FullName, row.ShortName, row.Acronym, row.Type,
		row.CNPJ, row.LegalNature, patch.NullableJSON(row.Address),
		patch.NullableJSON(row.Contacts), row.Website, row.Active,
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
func ByID(ctx context.Context, db *sqlx.DB, id int64) (*Institution, error) {
	const q = `
        SELECT ` + columns + `
        FROM   instituicoes
        WHERE  id = ?`

	var rec Institution
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns one page ordered by nome_completo, plus the unpaged total.
func List(ctx context.Context, db *sqlx.DB, limit, offset int) ([]Institution, int, error) {
	const q = `
        SELECT ` + columns + `
        FROM   instituicoes
        ORDER  BY nome_completo
        LIMIT  ? OFFSET ?`

	rows := []Institution{}
	if err := db.SelectContext(ctx, &rows, q, limit, offset); err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM instituicoes`); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies a resolved changeset and returns the row re-read.  An
// empty changeset degrades to a plain read, so callers that skip the
// short-circuit still get idempotent behavior.
func Update(ctx context.Context, db *sqlx.DB, id int64, cs patch.Changeset) (*Institution, error) {
	if cs.Empty() {
		return ByID(ctx, db, id)
	}

	q, args := store.UpdateQuery("instituicoes", cs, id)
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, store.Translate(err, uniqueKeys)
	}
	// Zero rows affected is ambiguous (missing id vs. identical values);
	// the follow-up read settles it either way.
	return ByID(ctx, db, id)
}

// Delete removes the row outright.  FK references surface as a
// ConstraintError the handler renders as 409.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	const q = `DELETE FROM instituicoes WHERE id = ?`

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
