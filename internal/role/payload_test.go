// internal/role/payload_test.go
//
// Run: go test ./internal/role -v

package role

import (
	"encoding/json"
	"testing"
)

func TestCreateRowFillsDefaults(t *testing.T) {
	p := CreatePayload{Name: "coordenador"}
	row := p.Row()
	if row.AccessLevel != 1 {
		t.Errorf("nivel_acesso default = %d", row.AccessLevel)
	}
	if !row.Active {
		t.Error("ativo should default to true")
	}
	if string(row.Permissions) != `{}` {
		t.Errorf("permissoes default = %q", row.Permissions)
	}
}

func TestPatchChangesetResetsPermissionsOnNull(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"permissoes": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	b, ok := cs["permissoes"].([]byte)
	if !ok || string(b) != `{}` {
		t.Fatalf("permissoes should reset to {}, got %#v", cs["permissoes"])
	}
}

func TestPatchChangesetBoundsAccessLevel(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"nivel_acesso": 11}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, ve := p.Changeset()
	if ve == nil || len(ve.Items) != 1 || ve.Items[0].Field != "nivel_acesso" {
		t.Fatalf("want nivel_acesso flagged, got %+v", ve)
	}
}

func TestPatchChangesetAllowsRename(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"nome": "secretaria"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if cs["nome"] != "secretaria" {
		t.Errorf("nome = %#v", cs["nome"])
	}
}
