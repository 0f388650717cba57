// internal/program/payload_test.go
//
// Run: go test ./internal/program -v

package program

import (
	"encoding/json"
	"testing"
)

func TestPatchChangesetDropsImmutableInstitution(t *testing.T) {
	var p PatchPayload
	body := `{"instituicao_id": 99, "sigla": "PPGCF"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if _, ok := cs["instituicao_id"]; ok {
		t.Error("instituicao_id is immutable and must not enter the changeset")
	}
	if cs["sigla"] != "PPGCF" {
		t.Errorf("sigla = %#v", cs["sigla"])
	}
}

func TestPatchChangesetBoundsCapesScore(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"conceito_capes": 9}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, ve := p.Changeset()
	if ve == nil || len(ve.Items) != 1 || ve.Items[0].Field != "conceito_capes" {
		t.Fatalf("want conceito_capes flagged, got %+v", ve)
	}
}

func TestPatchChangesetClearsNullableScoreAndCode(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"conceito_capes": null, "codigo_capes": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	for _, col := range []string{"conceito_capes", "codigo_capes"} {
		if v, ok := cs[col]; !ok || v != nil {
			t.Errorf("%s should be an explicit nil, got %#v (present=%v)", col, v, ok)
		}
	}
}

func TestPatchChangesetParsesBareDates(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"data_ultima_avaliacao": "2024-03-01"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if _, ok := cs["data_ultima_avaliacao"]; !ok {
		t.Fatal("date value missing from changeset")
	}
}

func TestCreateRowFillsDefaults(t *testing.T) {
	p := CreatePayload{InstitutionID: 1, Name: "PPG em Ciências Farmacêuticas", Acronym: "PPGCF", Level: "Mestrado"}
	row := p.Row()
	if row.Modality != "Presencial" || row.Status != "Ativo" {
		t.Errorf("defaults not applied: %+v", row)
	}
	if string(row.Settings) != `{}` {
		t.Errorf("configuracoes default = %q", row.Settings)
	}
}

func TestCreateValidateRejectsUnknownLevel(t *testing.T) {
	p := CreatePayload{InstitutionID: 1, Name: "Programa X de Teste", Acronym: "PX", Level: "Graduação"}
	ve := p.Validate()
	if ve == nil {
		t.Fatal("want validation error for nivel")
	}
	found := false
	for _, it := range ve.Items {
		if it.Field == "nivel" && it.Kind == "oneof" {
			found = true
		}
	}
	if !found {
		t.Fatalf("nivel not flagged: %+v", ve.Items)
	}
}
