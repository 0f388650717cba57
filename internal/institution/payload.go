// internal/institution/payload.go
//
// Request payloads and changeset resolution.
//
// Context
// -------
// Three payload shapes exist per entity:
//
//	CreatePayload – POST body, every required field tagged `required`.
//	PutPayload    – PUT body, same full schema; the changeset it yields
//	                covers every mutable column, so PUT is full-replace
//	                with immutable exceptions.
//	PatchPayload  – PATCH body, every field wrapped in patch.Field so
//	                absent, null, and value submissions stay distinct.
//
// `codigo` is immutable: PUT requires it (full schema) but the resolver
// drops it from the changeset; PATCH accepts and drops it silently.  An
// empty resolved changeset means the handler skips the store call
// entirely, so replaying the same patch is idempotent and does not bump
// updated_at.

package institution

import (
	"encoding/json"
	"strings"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/validate"
)

// CreatePayload is the POST body.
type CreatePayload struct {
	Code        string          `json:"codigo"            validate:"required,min=2,max=20,codigo"`
	FullName    string          `json:"nome_completo"     validate:"required,min=5,max=500"`
	ShortName   string          `json:"nome_abreviado"    validate:"required,min=2,max=50"`
	Acronym     string          `json:"sigla"             validate:"required,min=2,max=10"`
	Type        string          `json:"tipo"              validate:"required,oneof=Federal Estadual Municipal Privada"`
	CNPJ        *string         `json:"cnpj"              validate:"omitempty,cnpj"`
	LegalNature *string         `json:"natureza_juridica" validate:"omitempty,max=100"`
	Address     json.RawMessage `json:"endereco"`
	Contacts    json.RawMessage `json:"contatos"`
	Website     *string         `json:"website"           validate:"omitempty,url,max=255"`
	Active      *bool           `json:"ativo"`
}

// Validate runs the tag rules and returns every failing field.
func (p *CreatePayload) Validate() *problem.ValidationError {
	return validate.Struct(p)
}

// Normalize applies the business canonicalizations the original schema
// enforced: codigo is trimmed and upper-cased, CNPJ is reformatted to
// the standard punctuation.
func (p *CreatePayload) Normalize() {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	if p.CNPJ != nil {
		formatted := FormatCNPJ(*p.CNPJ)
		p.CNPJ = &formatted
	}
}

// Row builds the insertable row.  ativo defaults to true when omitted.
func (p *CreatePayload) Row() Institution {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return Institution{
		Code:        p.Code,
		FullName:    p.FullName,
		ShortName:   p.ShortName,
		Acronym:     p.Acronym,
		Type:        p.Type,
		CNPJ:        p.CNPJ,
		LegalNature: p.LegalNature,
		Address:     p.Address,
		Contacts:    p.Contacts,
		Website:     p.Website,
		Active:      active,
	}
}

// PutPayload is the PUT body: the full schema again, including the
// immutable codigo, which is validated but never persisted.
type PutPayload struct {
	CreatePayload
}

// Changeset maps every mutable column.  Explicitly submitted nulls on
// nullable columns clear them, matching full-replace semantics.
func (p *PutPayload) Changeset() patch.Changeset {
	p.Normalize()

	cs := patch.Changeset{}
	cs.Set("nome_completo", p.FullName)
	cs.Set("nome_abreviado", p.ShortName)
	cs.Set("sigla", p.Acronym)
	cs.Set("tipo", p.Type)
	cs.Set("cnpj", patch.NullableString(p.CNPJ))
	cs.Set("natureza_juridica", patch.NullableString(p.LegalNature))
	cs.Set("endereco", patch.NullableJSON(p.Address))
	cs.Set("contatos", patch.NullableJSON(p.Contacts))
	cs.Set("website", patch.NullableString(p.Website))
	if p.Active != nil {
		cs.Set("ativo", *p.Active)
	}
	return cs
}

// PatchPayload is the PATCH body with tri-state fields.
type PatchPayload struct {
	Code        patch.Field[string]          `json:"codigo"` // immutable, dropped
	FullName    patch.Field[string]          `json:"nome_completo"`
	ShortName   patch.Field[string]          `json:"nome_abreviado"`
	Acronym     patch.Field[string]          `json:"sigla"`
	Type        patch.Field[string]          `json:"tipo"`
	CNPJ        patch.Field[string]          `json:"cnpj"`
	LegalNature patch.Field[string]          `json:"natureza_juridica"`
	Address     patch.Field[json.RawMessage] `json:"endereco"`
	Contacts    patch.Field[json.RawMessage] `json:"contatos"`
	Website     patch.Field[string]          `json:"website"`
	Active      patch.Field[bool]            `json:"ativo"`
}

// Changeset resolves the merge-patch.  Validation failures (null on a
// required column, rule violations on submitted values) are collected
// per field; the changeset is only usable when the error is nil.
func (p *PatchPayload) Changeset() (patch.Changeset, *problem.ValidationError) {
	cs := patch.Changeset{}
	ve := &problem.ValidationError{}

	validate.MergeString(cs, ve, "nome_completo", p.FullName, "min=5,max=500")
	validate.MergeString(cs, ve, "nome_abreviado", p.ShortName, "min=2,max=50")
	validate.MergeString(cs, ve, "sigla", p.Acronym, "min=2,max=10")
	validate.MergeString(cs, ve, "tipo", p.Type, "oneof=Federal Estadual Municipal Privada")

	if v, ok := p.CNPJ.Get(); ok {
		validate.Var(ve, "cnpj", v, "cnpj")
		cs.Set("cnpj", FormatCNPJ(v))
	} else if p.CNPJ.IsNull() {
		cs.Set("cnpj", nil)
	}
	validate.MergeStringNullable(cs, ve, "natureza_juridica", p.LegalNature, "max=100")
	patch.MergeNullable(cs, "endereco", p.Address)
	patch.MergeNullable(cs, "contatos", p.Contacts)
	validate.MergeStringNullable(cs, ve, "website", p.Website, "url,max=255")
	validate.MergeBool(cs, ve, "ativo", p.Active)

	if !ve.Empty() {
		return nil, ve
	}
	return cs, nil
}

// FormatCNPJ strips punctuation and re-emits the canonical
// XX.XXX.XXX/XXXX-XX form.  Inputs that are not 14 digits are returned
// as-is; the validator has already flagged them.
func FormatCNPJ(s string) string {
	d := validate.DigitsOnly(s)
	if len(d) != 14 {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}
