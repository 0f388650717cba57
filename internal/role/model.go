// internal/role/model.go
//
// Access-role row: a named permission bundle users point at.
// Soft-deleted like users, so existing accounts never lose their FK
// target.
package role

import (
	"encoding/json"
	"time"
)

// Role mirrors one row of `roles`.
type Role struct {
	ID          int64           `db:"id"           json:"id"`
	Name        string          `db:"nome"         json:"nome"`
	Description *string         `db:"descricao"    json:"descricao"`
	AccessLevel int             `db:"nivel_acesso" json:"nivel_acesso"`
	Permissions json.RawMessage `db:"permissoes"   json:"permissoes"`
	Active      bool            `db:"ativo"        json:"ativo"`
	CreatedAt   time.Time       `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"   json:"updated_at"`
}

var uniqueKeys = map[string]string{
	"uq_role_nome": "nome",
}
