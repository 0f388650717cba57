// internal/user/payload.go
//
// Request payloads and changeset resolution for users.
//
// Context
// -------
// Create takes a plaintext `senha` and stores only its bcrypt hash.
// Update payloads carry neither a password nor a usable email: the
// email is accepted on the wire for PUT symmetry but dropped, and
// password changes are out of scope for the generic update path.
package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/validate"
)

// CreatePayload is the POST body.
type CreatePayload struct {
	Email    string  `json:"email"         validate:"required,email,max=255"`
	Password string  `json:"senha"         validate:"required,min=8,max=72"`
	FullName *string `json:"nome_completo" validate:"omitempty,min=3,max=255"`
	RoleID   int64   `json:"role_id"       validate:"required,gt=0"`
	Active   *bool   `json:"ativo"`
}

// Validate runs the tag rules and returns every failing field.
func (p *CreatePayload) Validate() *problem.ValidationError {
	return validate.Struct(p)
}

// Row hashes the password and builds the insertable row.  The hashing
// cost is bcrypt's default; raising it is a config concern the schema
// does not care about.
func (p *CreatePayload) Row() (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return User{
		Email:        p.Email,
		PasswordHash: string(hash),
		FullName:     p.FullName,
		RoleID:       p.RoleID,
		Active:       active,
	}, nil
}

// PutPayload is the PUT body.  email is validated for shape but
// immutable; senha is absent from the update schema altogether.
type PutPayload struct {
	Email    string  `json:"email"         validate:"required,email,max=255"`
	FullName *string `json:"nome_completo" validate:"omitempty,min=3,max=255"`
	RoleID   int64   `json:"role_id"       validate:"required,gt=0"`
	Active   *bool   `json:"ativo"`
}

// Validate runs the tag rules and returns every failing field.
func (p *PutPayload) Validate() *problem.ValidationError {
	return validate.Struct(p)
}

// Changeset maps every mutable column for the full replace.
func (p *PutPayload) Changeset() patch.Changeset {
	cs := patch.Changeset{}
	cs.Set("nome_completo", patch.NullableString(p.FullName))
	cs.Set("role_id", p.RoleID)
	if p.Active != nil {
		cs.Set("ativo", *p.Active)
	}
	return cs
}

// PatchPayload is the PATCH body with tri-state fields.
type PatchPayload struct {
	Email    patch.Field[string] `json:"email"` // immutable, dropped
	Password patch.Field[string] `json:"senha"` // never patchable, dropped
	FullName patch.Field[string] `json:"nome_completo"`
	RoleID   patch.Field[int64]  `json:"role_id"`
	Active   patch.Field[bool]   `json:"ativo"`
}

// Changeset resolves the merge-patch.
func (p *PatchPayload) Changeset() (patch.Changeset, *problem.ValidationError) {
	cs := patch.Changeset{}
	ve := &problem.ValidationError{}

	validate.MergeStringNullable(cs, ve, "nome_completo", p.FullName, "min=3,max=255")
	if v, ok := p.RoleID.Get(); ok {
		validate.Var(ve, "role_id", v, "gt=0")
		cs.Set("role_id", v)
	} else if p.RoleID.IsNull() {
		ve.Add("role_id", "campo não aceita null", "not_nullable")
	}
	validate.MergeBool(cs, ve, "ativo", p.Active)

	if !ve.Empty() {
		return nil, ve
	}
	return cs, nil
}

// CheckPassword compares a candidate against the stored hash.
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
