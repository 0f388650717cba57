// internal/membership/payload_test.go
//
// Run: go test ./internal/membership -v

package membership

import (
	"encoding/json"
	"testing"

	"github.com/ppghub/ppghub/internal/store"
)

func TestCreateRowDefaultsLinkDateToToday(t *testing.T) {
	p := CreatePayload{UserID: 1, ProgramID: 2, RoleID: 3}
	row := p.Row()
	if row.LinkedAt.String() != store.Today().String() {
		t.Errorf("data_vinculacao = %s", row.LinkedAt)
	}
	if row.Status != "Ativo" {
		t.Errorf("status default = %q", row.Status)
	}
}

func TestPatchChangesetDropsIdentifyingTriple(t *testing.T) {
	var p PatchPayload
	body := `{"usuario_id": 9, "programa_id": 9, "role_id": 9, "status": "Suspenso"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	for _, col := range []string{"usuario_id", "programa_id", "role_id"} {
		if _, ok := cs[col]; ok {
			t.Errorf("%s is immutable", col)
		}
	}
	if cs["status"] != "Suspenso" {
		t.Errorf("status = %#v", cs["status"])
	}
}

func TestPatchChangesetRejectsUnknownStatus(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"status": "Pausado"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, ve := p.Changeset()
	if ve == nil || len(ve.Items) != 1 || ve.Items[0].Kind != "oneof" {
		t.Fatalf("want oneof item for status, got %+v", ve)
	}
}

func TestPatchChangesetChecksDateOrder(t *testing.T) {
	var p PatchPayload
	body := `{"data_vinculacao": "2024-06-01", "data_desvinculacao": "2024-01-01"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, ve := p.Changeset()
	if ve == nil || len(ve.Items) != 1 || ve.Items[0].Kind != "date_order" {
		t.Fatalf("want date_order item, got %+v", ve)
	}
}

func TestPutChangesetCoversMutableColumnsOnly(t *testing.T) {
	d, err := store.ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	p := PutPayload{CreatePayload{UserID: 1, ProgramID: 2, RoleID: 3, LinkedAt: &d, Status: "Desligado"}}

	cs := p.Changeset()
	if len(cs) != 4 {
		t.Fatalf("want 4 entries, got %#v", cs)
	}
	for _, col := range []string{"usuario_id", "programa_id", "role_id"} {
		if _, ok := cs[col]; ok {
			t.Errorf("%s is immutable", col)
		}
	}
}
