// internal/user/model.go
//
// User account row.
//
// Context
// -------
// email is unique and fixed after create, and the password hash never
// travels through the generic update path; both are silently dropped
// from changesets.  senha_hash is excluded from JSON output entirely.
// Users are soft-deleted by flipping ativo, so historical faculty and
// membership rows keep a valid FK target.
package user

import "time"

// User mirrors one row of `usuarios`.
type User struct {
	ID           int64     `db:"id"            json:"id"`
	Email        string    `db:"email"         json:"email"`
	PasswordHash string    `db:"senha_hash"    json:"-"`
	FullName     *string   `db:"nome_completo" json:"nome_completo"`
	RoleID       int64     `db:"role_id"       json:"role_id"`
	Active       bool      `db:"ativo"         json:"ativo"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updated_at"`
}

var uniqueKeys = map[string]string{
	"uq_usuario_email": "email",
}
