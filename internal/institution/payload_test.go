// internal/institution/payload_test.go
//
// Changeset resolution tests: tri-state merge, immutable drop, and the
// CNPJ canonical form.
//
// Run: go test ./internal/institution -v

package institution

import (
	"encoding/json"
	"testing"
)

func TestPatchChangesetMergesOnlySubmittedFields(t *testing.T) {
	var p PatchPayload
	body := `{"nome_abreviado": "UEPB Nova", "website": null}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if len(cs) != 2 {
		t.Fatalf("want 2 entries, got %d: %#v", len(cs), cs)
	}
	if cs["nome_abreviado"] != "UEPB Nova" {
		t.Errorf("nome_abreviado = %#v", cs["nome_abreviado"])
	}
	if v, ok := cs["website"]; !ok || v != nil {
		t.Errorf("website should be an explicit nil, got %#v (present=%v)", v, ok)
	}
}

func TestPatchChangesetDropsImmutableCode(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"codigo": "NOVO", "sigla": "NV"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if _, ok := cs["codigo"]; ok {
		t.Error("codigo is immutable and must not enter the changeset")
	}
	if cs["sigla"] != "NV" {
		t.Errorf("sigla = %#v", cs["sigla"])
	}
}

func TestPatchChangesetRejectsNullOnRequiredColumn(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"nome_completo": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if cs != nil {
		t.Fatalf("changeset should be nil on validation failure, got %#v", cs)
	}
	if ve == nil || len(ve.Items) != 1 {
		t.Fatalf("want one validation item, got %+v", ve)
	}
	if ve.Items[0].Field != "nome_completo" || ve.Items[0].Kind != "not_nullable" {
		t.Errorf("unexpected item: %+v", ve.Items[0])
	}
}

func TestPatchChangesetEmptyBodyIsEmpty(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if !cs.Empty() {
		t.Fatalf("want empty changeset, got %#v", cs)
	}
}

func TestPatchChangesetValidatesSubmittedValues(t *testing.T) {
	var p PatchPayload
	body := `{"sigla": "X", "tipo": "Confederal"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, ve := p.Changeset()
	if ve == nil || len(ve.Items) != 2 {
		t.Fatalf("want two validation items, got %+v", ve)
	}
	fields := map[string]bool{}
	for _, it := range ve.Items {
		fields[it.Field] = true
	}
	if !fields["sigla"] || !fields["tipo"] {
		t.Errorf("want sigla and tipo flagged, got %+v", ve.Items)
	}
}

func TestPutChangesetCoversMutableColumnsOnly(t *testing.T) {
	website := "https://uepb.edu.br"
	p := PutPayload{CreatePayload{
		Code:      "uepb",
		FullName:  "Universidade Estadual da Paraíba",
		ShortName: "UEPB",
		Acronym:   "UEPB",
		Type:      "Estadual",
		Website:   &website,
	}}

	cs := p.Changeset()
	if _, ok := cs["codigo"]; ok {
		t.Error("codigo must never appear in a PUT changeset")
	}
	if cs["cnpj"] != nil {
		t.Errorf("omitted cnpj should full-replace to nil, got %#v", cs["cnpj"])
	}
	if cs["website"] != website {
		t.Errorf("website = %#v", cs["website"])
	}
}

func TestCreateNormalizeUppercasesCode(t *testing.T) {
	cnpj := "12345678000195"
	p := CreatePayload{Code: " uepb ", CNPJ: &cnpj}
	p.Normalize()
	if p.Code != "UEPB" {
		t.Errorf("Code = %q", p.Code)
	}
	if *p.CNPJ != "12.345.678/0001-95" {
		t.Errorf("CNPJ = %q", *p.CNPJ)
	}
}

func TestFormatCNPJLeavesBadInputAlone(t *testing.T) {
	if got := FormatCNPJ("123"); got != "123" {
		t.Errorf("FormatCNPJ(123) = %q", got)
	}
	if got := FormatCNPJ("12.345.678/0001-95"); got != "12.345.678/0001-95" {
		t.Errorf("already-formatted input changed: %q", got)
	}
}
