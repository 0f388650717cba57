// internal/role/payload.go
//
// Request payloads and changeset resolution for roles.  Unlike the
// other entities, nothing here is immutable besides the id; nome is
// unique but renameable.
package role

import (
	"encoding/json"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/validate"
)

// CreatePayload is the POST body.
type CreatePayload struct {
	Name        string          `json:"nome"         validate:"required,min=2,max=80"`
	Description *string         `json:"descricao"    validate:"omitempty,max=255"`
	AccessLevel *int            `json:"nivel_acesso" validate:"omitempty,gte=1,lte=10"`
	Permissions json.RawMessage `json:"permissoes"`
	Active      *bool           `json:"ativo"`
}

// Validate runs the tag rules and returns every failing field.
func (p *CreatePayload) Validate() *problem.ValidationError {
	return validate.Struct(p)
}

// Row builds the insertable row, filling schema defaults.
func (p *CreatePayload) Row() Role {
	row := Role{
		Name:        p.Name,
		Description: p.Description,
		AccessLevel: 1,
		Permissions: p.Permissions,
		Active:      true,
	}
	if p.AccessLevel != nil {
		row.AccessLevel = *p.AccessLevel
	}
	if p.Active != nil {
		row.Active = *p.Active
	}
	if len(row.Permissions) == 0 || string(row.Permissions) == "null" {
		row.Permissions = json.RawMessage(`{}`)
	}
	return row
}

// PutPayload is the PUT body.
type PutPayload struct {
	CreatePayload
}

// Changeset maps every mutable column for the full replace.
func (p *PutPayload) Changeset() patch.Changeset {
	row := p.Row()

	cs := patch.Changeset{}
	cs.Set("nome", row.Name)
	cs.Set("descricao", patch.NullableString(row.Description))
	cs.Set("nivel_acesso", row.AccessLevel)
	cs.Set("permissoes", []byte(row.Permissions))
	cs.Set("ativo", row.Active)
	return cs
}

// PatchPayload is the PATCH body with tri-state fields.
type PatchPayload struct {
	Name        patch.Field[string]          `json:"nome"`
	Description patch.Field[string]          `json:"descricao"`
	AccessLevel patch.Field[int]             `json:"nivel_acesso"`
	Permissions patch.Field[json.RawMessage] `json:"permissoes"`
	Active      patch.Field[bool]            `json:"ativo"`
}

// Changeset resolves the merge-patch.
func (p *PatchPayload) Changeset() (patch.Changeset, *problem.ValidationError) {
	cs := patch.Changeset{}
	ve := &problem.ValidationError{}

	validate.MergeString(cs, ve, "nome", p.Name, "min=2,max=80")
	validate.MergeStringNullable(cs, ve, "descricao", p.Description, "max=255")
	validate.MergeInt(cs, ve, "nivel_acesso", p.AccessLevel, "gte=1,lte=10")
	if v, ok := p.Permissions.Get(); ok {
		cs.Set("permissoes", patch.NullableJSON(v))
	} else if p.Permissions.IsNull() {
		// NOT NULL with a `{}` default; null resets it.
		cs.Set("permissoes", []byte(`{}`))
	}
	validate.MergeBool(cs, ve, "ativo", p.Active)

	if !ve.Empty() {
		return nil, ve
	}
	return cs, nil
}
