// internal/program/model.go
//
// Graduate-program row.
//
// Context
// -------
// Rows belong to exactly one institution, and the owning id is fixed
// for the lifetime of the row; moving a program between institutions is
// done by recreating it.  Two uniqueness rules apply: the CAPES code is
// globally unique when present (the column is nullable, and NULLs do
// not collide), and the acronym is unique within its institution.
package program

import (
	"encoding/json"
	"time"

	"github.com/ppghub/ppghub/internal/store"
)

// Program mirrors one row of `programas`.
type Program struct {
	ID                int64           `db:"id"                    json:"id"`
	InstitutionID     int64           `db:"instituicao_id"        json:"instituicao_id"`
	CapesCode         *string         `db:"codigo_capes"          json:"codigo_capes"`
	Name              string          `db:"nome"                  json:"nome"`
	Acronym           string          `db:"sigla"                 json:"sigla"`
	ConcentrationArea *string         `db:"area_concentracao"     json:"area_concentracao"`
	Level             string          `db:"nivel"                 json:"nivel"`
	Modality          string          `db:"modalidade"            json:"modalidade"`
	OperatingSince    *store.Date     `db:"inicio_funcionamento"  json:"inicio_funcionamento"`
	CapesScore        *int            `db:"conceito_capes"        json:"conceito_capes"`
	LastEvaluation    *store.Date     `db:"data_ultima_avaliacao" json:"data_ultima_avaliacao"`
	EvaluationPeriod  *string         `db:"trienio_avaliacao"     json:"trienio_avaliacao"`
	Settings          json.RawMessage `db:"configuracoes"         json:"configuracoes"`
	Status            string          `db:"status"                json:"status"`
	CreatedAt         time.Time       `db:"created_at"            json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"            json:"updated_at"`
}

// uniqueKeys maps the table's unique indexes to wire fields for the
// conflict hint.  The composite index reports both members, joined.
var uniqueKeys = map[string]string{
	"uq_programa_codigo_capes":      "codigo_capes",
	"uq_programa_instituicao_sigla": "instituicao_id,sigla",
}
