// internal/faculty/payload.go
//
// Request payloads and changeset resolution for faculty records.
//
// Context
// -------
// usuario_id and programa_id are both immutable.  The date pair gets an
// application-side ordering check whenever both ends are known in the
// same request; the schema's check constraint covers the split case,
// where PATCH moves one end past the other.
package faculty

import (
	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/store"
	"github.com/ppghub/ppghub/internal/validate"
)

// CreatePayload is the POST body.
type CreatePayload struct {
	UserID        int64       `json:"usuario_id"          validate:"required,gt=0"`
	ProgramID     int64       `json:"programa_id"         validate:"required,gt=0"`
	Registration  *string     `json:"matricula"           validate:"omitempty,max=50"`
	Category      *string     `json:"categoria"           validate:"omitempty,max=50"`
	WorkRegime    *string     `json:"regime_trabalho"     validate:"omitempty,oneof=DE 40h 20h"`
	BondType      string      `json:"tipo_vinculo"        validate:"required,oneof=Permanente Colaborador Visitante"`
	LinkedAt      *store.Date `json:"data_vinculacao"     validate:"required"`
	UnlinkedAt    *store.Date `json:"data_desvinculacao"`
	HIndex        *int        `json:"h_index"             validate:"omitempty,gte=0"`
	Publications  *int        `json:"total_publicacoes"   validate:"omitempty,gte=0"`
	Status        string      `json:"status"              validate:"omitempty,max=50"`
	LeavingReason *string     `json:"motivo_desligamento" validate:"omitempty,max=2000"`
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
func (p *CreatePayload) Row() Faculty {
	row := Faculty{
		UserID:        p.UserID,
		ProgramID:     p.ProgramID,
		Registration:  p.Registration,
		Category:      p.Category,
		WorkRegime:    p.WorkRegime,
		BondType:      p.BondType,
		LinkedAt:      *p.LinkedAt,
		UnlinkedAt:    p.UnlinkedAt,
		Status:        p.Status,
		LeavingReason: p.LeavingReason,
	}
	if p.HIndex != nil {
		row.HIndex = *p.HIndex
	}
	if p.Publications != nil {
		row.Publications = *p.Publications
	}
	if row.Status == "" {
		row.Status = "Ativo"
	}
	return row
}

// PutPayload is the PUT body: full schema, FK pair validated but never
// persisted.
type PutPayload struct {
	CreatePayload
}

// Changeset maps every mutable column for the full replace.
func (p *PutPayload) Changeset() patch.Changeset {
	row := p.Row()

	cs := patch.Changeset{}
	cs.Set("matricula", patch.NullableString(row.Registration))
	cs.Set("categoria", patch.NullableString(row.Category))
	cs.Set("regime_trabalho", patch.NullableString(row.WorkRegime))
	cs.Set("tipo_vinculo", row.BondType)
	cs.Set("data_vinculacao", row.LinkedAt)
	cs.Set("data_desvinculacao", store.NullDate(row.UnlinkedAt))
	cs.Set("h_index", row.HIndex)
	cs.Set("total_publicacoes", row.Publications)
	cs.Set("status", row.Status)
	cs.Set("motivo_desligamento", patch.NullableString(row.LeavingReason))
	return cs
}

// PatchPayload is the PATCH body with tri-state fields.
type PatchPayload struct {
	UserID        patch.Field[int64]      `json:"usuario_id"` // immutable, dropped
	ProgramID     patch.Field[int64]      `json:"programa_id"` // immutable, dropped
	Registration  patch.Field[string]     `json:"matricula"`
	Category      patch.Field[string]     `json:"categoria"`
	WorkRegime    patch.Field[string]     `json:"regime_trabalho"`
	BondType      patch.Field[string]     `json:"tipo_vinculo"`
	LinkedAt      patch.Field[store.Date] `json:"data_vinculacao"`
	UnlinkedAt    patch.Field[store.Date] `json:"data_desvinculacao"`
	HIndex        patch.Field[int]        `json:"h_index"`
	Publications  patch.Field[int]        `json:"total_publicacoes"`
	Status        patch.Field[string]     `json:"status"`
	LeavingReason patch.Field[string]     `json:"motivo_desligamento"`
}

// Changeset resolves the merge-patch.  The ordering rule fires only
// when both dates travel in the same request; otherwise the schema
// check constraint has the final word against the stored counterpart.
func (p *PatchPayload) Changeset() (patch.Changeset, *problem.ValidationError) {
	cs := patch.Changeset{}
	ve := &problem.ValidationError{}

	validate.MergeStringNullable(cs, ve, "matricula", p.Registration, "max=50")
	validate.MergeStringNullable(cs, ve, "categoria", p.Category, "max=50")
	validate.MergeStringNullable(cs, ve, "regime_trabalho", p.WorkRegime, "oneof=DE 40h 20h")
	validate.MergeString(cs, ve, "tipo_vinculo", p.BondType, "oneof=Permanente Colaborador Visitante")
	if v, ok := p.LinkedAt.Get(); ok {
		cs.Set("data_vinculacao", v)
	} else if p.LinkedAt.IsNull() {
		ve.Add("data_vinculacao", "campo não aceita null", "not_nullable")
	}
	patch.MergeNullable(cs, "data_desvinculacao", p.UnlinkedAt)
	validate.MergeInt(cs, ve, "h_index", p.HIndex, "gte=0")
	validate.MergeInt(cs, ve, "total_publicacoes", p.Publications, "gte=0")
	validate.MergeString(cs, ve, "status", p.Status, "max=50")
	validate.MergeStringNullable(cs, ve, "motivo_desligamento", p.LeavingReason, "max=2000")

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
