// internal/membership/model.go
//
// Membership row (vínculo): a user attached to a program under a role.
//
// Context
// -------
// All three foreign keys are immutable, and the triple is unique, so a
// user holds a given role in a given program at most once.  Ending a
// vínculo sets data_desvinculacao and status, keeping the row for
// history; deleting it removes the record entirely.
package membership

import (
	"time"

	"github.com/ppghub/ppghub/internal/store"
)

// Membership mirrors one row of `usuarios_programas`.
type Membership struct {
	ID         int64       `db:"id"                 json:"id"`
	UserID     int64       `db:"usuario_id"         json:"usuario_id"`
	ProgramID  int64       `db:"programa_id"        json:"programa_id"`
	RoleID     int64       `db:"role_id"            json:"role_id"`
	LinkedAt   store.Date  `db:"data_vinculacao"    json:"data_vinculacao"`
	UnlinkedAt *store.Date `db:"data_desvinculacao" json:"data_desvinculacao"`
	Status     string      `db:"status"             json:"status"`
	Notes      *string     `db:"observacoes"        json:"observacoes"`
	CreatedAt  time.Time   `db:"created_at"         json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"         json:"updated_at"`
}

var uniqueKeys = map[string]string{
	"uq_usuario_programa_role": "usuario_id,programa_id,role_id",
}
