// internal/program/payload.go
//
// Request payloads and changeset resolution for programs.
//
// Context
// -------
// `instituicao_id` is the immutable field here: both PUT and PATCH
// accept it on the wire and drop it from the changeset without comment.
// `conceito_capes` is bounded to the CAPES 1..7 scale whenever a value
// is submitted, and null clears it.
package program

import (
	"encoding/json"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/problem"
	"github.com/ppghub/ppghub/internal/store"
	"github.com/ppghub/ppghub/internal/validate"
)

// CreatePayload is the POST body.  modalidade and status carry the
// schema defaults when omitted.
type CreatePayload struct {
	InstitutionID     int64           `json:"instituicao_id"        validate:"required,gt=0"`
	CapesCode         *string         `json:"codigo_capes"          validate:"omitempty,min=2,max=20,codigo"`
	Name              string          `json:"nome"                  validate:"required,min=3,max=255"`
	Acronym           string          `json:"sigla"                 validate:"required,min=2,max=20"`
	ConcentrationArea *string         `json:"area_concentracao"     validate:"omitempty,max=255"`
	Level             string          `json:"nivel"                 validate:"required,oneof=Mestrado Doutorado"`
	Modality          string          `json:"modalidade"            validate:"omitempty,oneof=Presencial EAD Híbrido"`
	OperatingSince    *store.Date     `json:"inicio_funcionamento"`
	CapesScore        *int            `json:"conceito_capes"        validate:"omitempty,gte=1,lte=7"`
	LastEvaluation    *store.Date     `json:"data_ultima_avaliacao"`
	EvaluationPeriod  *string         `json:"trienio_avaliacao"     validate:"omitempty,max=20"`
	Settings          json.RawMessage `json:"configuracoes"`
	Status            string          `json:"status"                validate:"omitempty,max=50"`
}

// Validate runs the tag rules and returns every failing field.
func (p *CreatePayload) Validate() *problem.ValidationError {
	return validate.Struct(p)
}

// Row builds the insertable row, filling schema defaults.
func (p *CreatePayload) Row() Program {
	modality := p.Modality
	if modality == "" {
		modality = "Presencial"
	}
	status := p.Status
	if status == "" {
		status = "Ativo"
	}
	settings := p.Settings
	if len(settings) == 0 || string(settings) == "null" {
		settings = json.RawMessage(`{}`)
	}
	return Program{
		InstitutionID:     p.InstitutionID,
		CapesCode:         p.CapesCode,
		Name:              p.Name,
		Acronym:           p.Acronym,
		ConcentrationArea: p.ConcentrationArea,
		Level:             p.Level,
		Modality:          modality,
		OperatingSince:    p.OperatingSince,
		CapesScore:        p.CapesScore,
		LastEvaluation:    p.LastEvaluation,
		EvaluationPeriod:  p.EvaluationPeriod,
		Settings:          settings,
		Status:            status,
	}
}

// PutPayload is the PUT body: full schema, instituicao_id validated but
// never persisted.
type PutPayload struct {
	CreatePayload
}

// Changeset maps every mutable column for the full replace.
func (p *PutPayload) Changeset() patch.Changeset {
	row := p.Row()

	cs := patch.Changeset{}
	cs.Set("codigo_capes", patch.NullableString(row.CapesCode))
	cs.Set("nome", row.Name)
	cs.Set("sigla", row.Acronym)
	cs.Set("area_concentracao", patch.NullableString(row.ConcentrationArea))
	cs.Set("nivel", row.Level)
	cs.Set("modalidade", row.Modality)
	cs.Set("inicio_funcionamento", store.NullDate(row.OperatingSince))
	cs.Set("conceito_capes", patch.NullableInt(row.CapesScore))
	cs.Set("data_ultima_avaliacao", store.NullDate(row.LastEvaluation))
	cs.Set("trienio_avaliacao", patch.NullableString(row.EvaluationPeriod))
	cs.Set("configuracoes", []byte(row.Settings))
	cs.Set("status", row.Status)
	return cs
}

// PatchPayload is the PATCH body with tri-state fields.
type PatchPayload struct {
	InstitutionID     patch.Field[int64]           `json:"instituicao_id"` // immutable, dropped
	CapesCode         patch.Field[string]          `json:"codigo_capes"`
	Name              patch.Field[string]          `json:"nome"`
	Acronym           patch.Field[string]          `json:"sigla"`
	ConcentrationArea patch.Field[string]          `json:"area_concentracao"`
	Level             patch.Field[string]          `json:"nivel"`
	Modality          patch.Field[string]          `json:"modalidade"`
	OperatingSince    patch.Field[store.Date]      `json:"inicio_funcionamento"`
	CapesScore        patch.Field[int]             `json:"conceito_capes"`
	LastEvaluation    patch.Field[store.Date]      `json:"data_ultima_avaliacao"`
	EvaluationPeriod  patch.Field[string]          `json:"trienio_avaliacao"`
	Settings          patch.Field[json.RawMessage] `json:"configuracoes"`
	Status            patch.Field[string]          `json:"status"`
}

// Changeset resolves the merge-patch, collecting every rule failure.
func (p *PatchPayload) Changeset() (patch.Changeset, *problem.ValidationError) {
	cs := patch.Changeset{}
	ve := &problem.ValidationError{}

	validate.MergeStringNullable(cs, ve, "codigo_capes", p.CapesCode, "min=2,max=20,codigo")
	validate.MergeString(cs, ve, "nome", p.Name, "min=3,max=255")
	validate.MergeString(cs, ve, "sigla", p.Acronym, "min=2,max=20")
	validate.MergeStringNullable(cs, ve, "area_concentracao", p.ConcentrationArea, "max=255")
	validate.MergeString(cs, ve, "nivel", p.Level, "oneof=Mestrado Doutorado")
	validate.MergeString(cs, ve, "modalidade", p.Modality, "oneof=Presencial EAD Híbrido")
	patch.MergeNullable(cs, "inicio_funcionamento", p.OperatingSince)
	validate.MergeIntNullable(cs, ve, "conceito_capes", p.CapesScore, "gte=1,lte=7")
	patch.MergeNullable(cs, "data_ultima_avaliacao", p.LastEvaluation)
	validate.MergeStringNullable(cs, ve, "trienio_avaliacao", p.EvaluationPeriod, "max=20")
	if v, ok := p.Settings.Get(); ok {
		cs.Set("configuracoes", patch.NullableJSON(v))
	} else if p.Settings.IsNull() {
		// The column is NOT NULL with a `{}` default; null resets it.
		cs.Set("configuracoes", []byte(`{}`))
	}
	validate.MergeString(cs, ve, "status", p.Status, "max=50")

	if !ve.Empty() {
		return nil, ve
	}
	return cs, nil
}
