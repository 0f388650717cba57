// internal/faculty/model.go
//
// Faculty-member row: one user acting as docente inside one program.
//
// Context
// -------
// Both foreign keys are immutable; the pair is unique, so a user holds
// at most one faculty record per program.  Unlinking keeps the row and
// sets data_desvinculacao, which the schema requires to be on or after
// data_vinculacao.
package faculty

import (
	"time"

	"github.com/ppghub/ppghub/internal/store"
)

// Faculty mirrors one row of `docentes`.
type Faculty struct {
	ID            int64       `db:"id"                  json:"id"`
	UserID        int64       `db:"usuario_id"          json:"usuario_id"`
	ProgramID     int64       `db:"programa_id"         json:"programa_id"`
	Registration  *string     `db:"matricula"           json:"matricula"`
	Category      *string     `db:"categoria"           json:"categoria"`
	WorkRegime    *string     `db:"regime_trabalho"     json:"regime_trabalho"`
	BondType      string      `db:"tipo_vinculo"        json:"tipo_vinculo"`
	LinkedAt      store.Date  `db:"data_vinculacao"     json:"data_vinculacao"`
	UnlinkedAt    *store.Date `db:"data_desvinculacao"  json:"data_desvinculacao"`
	HIndex        int         `db:"h_index"             json:"h_index"`
	Publications  int         `db:"total_publicacoes"   json:"total_publicacoes"`
	Status        string      `db:"status"              json:"status"`
	LeavingReason *string     `db:"motivo_desligamento" json:"motivo_desligamento"`
	CreatedAt     time.Time   `db:"created_at"          json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"          json:"updated_at"`
}

var uniqueKeys = map[string]string{
	"uq_docente_usuario_programa": "usuario_id,programa_id",
}
