// internal/membership/payload.go
//
// Request payloads and changeset resolution for vínculos.  Only the
// dates, status, and observações are mutable; the identifying triple is
// fixed at create.
package membership

import (
	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/store"
	"github.com/ppghub/ppghub/internal/validate"
)

// CreatePayload is the POST body.  data_vinculacao defaults to today.
type CreatePayload struct {
	UserID     int64       `json:"usuario_id"         validate:"required,gt=0"`
	ProgramID  int64       `json:"programa_id"        validate:"required,gt=0"`
	RoleID     int64       `json:"role_id"            validate:"required,gt=0"`
	LinkedAt   *store.Date `json:"data_vinculacao"`
	UnlinkedAt *store.Date `json:"data_desvinculacao"`
	Status     string      `json:"status"             validate:"omitempty,oneof=Ativo Suspenso Desligado"`
	Notes      *string     `json:"observacoes"        validate:"omitempty,max=2000"`
}

// Validate runs the tag rules plus the date-ordering rule.
func (p *CreatePayload) Validate() *problem.ValidationError {
	ve := validate.Struct(p)
	if ve == nil {
		ve = &problem.ValidationError{}
	}
	if p.LinkedAt != nil && p.UnlinkedAt != nil && p.UnlinkedAt.Before(*p.LinkedAt) {
		ve.Add("data_desvinculacao", "não pode ser anterior a data_vinculacao", "date_order")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// Row builds the insertable row, filling schema defaults.
func (p *CreatePayload) Row() Membership {
	linked := store.Today()
	if p.LinkedAt != nil {
		linked = *p.LinkedAt
	}
	status := p.Status
	if status == "" {
		status = "Ativo"
	}
	return Membership{
		UserID:     p.UserID,
		ProgramID:  p.ProgramID,
		RoleID:     p.RoleID,
		LinkedAt:   linked,
		UnlinkedAt: p.UnlinkedAt,
		Status:     status,
		Notes:      p.Notes,
	}
}

// PutPayload is the PUT body: full schema, the FK triple validated but
// never persisted.
type PutPayload struct {
	CreatePayload
}

// Changeset maps every mutable column for the full replace.
func (p *PutPayload) Changeset() patch.Changeset {
	row := p.Row()

	cs := patch.Changeset{}
	cs.Set("data_vinculacao", row.LinkedAt)
	cs.Set("data_desvinculacao", store.NullDate(row.UnlinkedAt))
	cs.Set("status", row.Status)
	cs.Set("observacoes", patch.NullableString(row.Notes))
	return cs
}

// PatchPayload is the PATCH body with tri-state fields.
type PatchPayload struct {
	UserID     patch.Field[int64]      `json:"usuario_id"` // immutable, dropped
	ProgramID  patch.Field[int64]      `json:"programa_id"` // immutable, dropped
	RoleID     patch.Field[int64]      `json:"role_id"` // immutable, dropped
	LinkedAt   patch.Field[store.Date] `json:"data_vinculacao"`
	UnlinkedAt patch.Field[store.Date] `json:"data_desvinculacao"`
	Status     patch.Field[string]     `json:"status"`
	Notes      patch.Field[string]     `json:"observacoes"`
}

// Changeset resolves the merge-patch, checking date order when both
// ends travel together.
func (p *PatchPayload) Changeset() (patch.Changeset, *problem.ValidationError) {
	cs := patch.Changeset{}
	ve := &problem.ValidationError{}

	if v, ok := p.LinkedAt.Get(); ok {
		cs.Set("data_vinculacao", v)
	} else if p.LinkedAt.IsNull() {
		ve.Add("data_vinculacao", "campo não aceita null", "not_nullable")
	}
	patch.MergeNullable(cs, "data_desvinculacao", p.UnlinkedAt)
	validate.MergeString(cs, ve, "status", p.Status, "oneof=Ativo Suspenso Desligado")
	validate.MergeStringNullable(cs, ve, "observacoes", p.Notes, "max=2000")

	if linked, ok := p.LinkedAt.Get(); ok {
		if unlinked, ok := p.UnlinkedAt.Get(); ok && unlinked.Before(linked) {
			ve.Add("data_desvinculacao", "não pode ser anterior a data_vinculacao", "date_order")
		}
	}

	if !ve.Empty() {
		return nil, ve
	}
	return cs, nil
}
