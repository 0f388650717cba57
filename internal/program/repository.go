// internal/program/repository.go
//
// Storage access for `programas`.
//
// Notes
// -----
// • List accepts an optional instituicao_id filter; the count query
//   carries the same predicate so meta.total matches the page.
// • Programs are hard-deleted; membership and faculty rows reference
//   them with RESTRICT, so in-use programs come back as 409.
package program

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/store"
)

const columns = `
        id, instituicao_id, codigo_capes, nome, sigla, area_concentracao,
        nivel, modalidade, inicio_funcionamento, conceito_capes,
        data_ultima_avaliacao, trienio_avaliacao, configuracoes, status,
        created_at, updated_at`

// Create inserts a new row and returns it re-read.
func Create(ctx context.Context, db *sqlx.DB, row Program) (*Program, error) {
	const q = `
        INSERT INTO programas
               (instituicao_id, codigo_capes, nome, sigla, area_concentracao,
                nivel, modalidade, inicio_funcionamento, conceito_capes,
                data_ultima_avaliacao, trienio_avaliacao, configuracoes, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, q,
		row.InstitutionID, row.CapesCode, row.Name, row.Acronym,
		row.ConcentrationArea, row.Level, row.Modality,
		store.NullDate(row.OperatingSince), row.CapesScore,
		store.NullDate(row.LastEvaluation), row.EvaluationPeriod,
		[]byte(row.Settings), row.Status,
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
func ByID(ctx context.Context, db *sqlx.DB, id int64) (*Program, error) {
	const q = `
        SELECT ` + columns + `
        FROM   programas
        WHERE  id = ?`

	var rec Program
	if err := db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List returns one page ordered by nome, optionally scoped to one
// institution, plus the filtered total.
func List(ctx context.Context, db *sqlx.DB, institutionID *int64, limit, offset int) ([]Program, int, error) {
	where, args := "", []any{}
	if institutionID != nil {
		where = " WHERE instituicao_id = ?"
		args = append(args, *institutionID)
	}

	q := "SELECT " + columns + " FROM programas" + where +
		" ORDER BY nome LIMIT ? OFFSET ?"
	rows := []Program{}
	if err := db.SelectContext(ctx, &rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM programas"+where, args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies a resolved changeset and returns the row re-read.
func Update(ctx context.Context, db *sqlx.DB, id int64, cs patch.Changeset) (*Program, error) {
	if cs.Empty() {
		return ByID(ctx, db, id)
	}

	q, args := store.UpdateQuery("programas", cs, id)
	if _, err := db.ExecContext(ctx, q, args...); err != nil {
		return nil, store.Translate(err, uniqueKeys)
	}
	return ByID(ctx, db, id)
}

// Delete removes the row outright.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	const q = `DELETE FROM programas WHERE id = ?`

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
