// internal/faculty/payload_test.go
//
// Run: go test ./internal/faculty -v

package faculty

import (
	"encoding/json"
	"testing"

	"github.com/ppghub/ppghub/internal/store"
)

func mustDate(t *testing.T, s string) store.Date {
	t.Helper()
	d, err := store.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestCreateValidateRejectsInvertedDates(t *testing.T) {
	linked := mustDate(t, "2024-03-01")
	unlinked := mustDate(t, "2023-01-01")
	p := CreatePayload{
		UserID:     1,
		ProgramID:  2,
		BondType:   "Permanente",
		LinkedAt:   &linked,
		UnlinkedAt: &unlinked,
	}

	ve := p.Validate()
	if ve == nil {
		t.Fatal("want validation error")
	}
	found := false
	for _, it := range ve.Items {
		if it.Field == "data_desvinculacao" && it.Kind == "date_order" {
			found = true
		}
	}
	if !found {
		t.Fatalf("date ordering not flagged: %+v", ve.Items)
	}
}

func TestCreateValidateAcceptsSameDayUnlink(t *testing.T) {
	d := mustDate(t, "2024-03-01")
	p := CreatePayload{UserID: 1, ProgramID: 2, BondType: "Colaborador", LinkedAt: &d, UnlinkedAt: &d}
	if ve := p.Validate(); ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
}

func TestPatchChangesetDropsBothForeignKeys(t *testing.T) {
	var p PatchPayload
	body := `{"usuario_id": 5, "programa_id": 6, "categoria": "Titular"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if _, ok := cs["usuario_id"]; ok {
		t.Error("usuario_id is immutable")
	}
	if _, ok := cs["programa_id"]; ok {
		t.Error("programa_id is immutable")
	}
	if cs["categoria"] != "Titular" {
		t.Errorf("categoria = %#v", cs["categoria"])
	}
}

func TestPatchChangesetChecksDatePairWhenBothTravel(t *testing.T) {
	var p PatchPayload
	body := `{"data_vinculacao": "2024-03-01", "data_desvinculacao": "2023-01-01"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, ve := p.Changeset()
	if ve == nil || len(ve.Items) != 1 || ve.Items[0].Kind != "date_order" {
		t.Fatalf("want one date_order item, got %+v", ve)
	}
}

func TestPatchChangesetAllowsClearingUnlinkDate(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"data_desvinculacao": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cs, ve := p.Changeset()
	if ve != nil {
		t.Fatalf("unexpected validation error: %+v", ve.Items)
	}
	if v, ok := cs["data_desvinculacao"]; !ok || v != nil {
		t.Errorf("want explicit nil, got %#v (present=%v)", v, ok)
	}
}

func TestPatchChangesetRejectsNullLinkDate(t *testing.T) {
	var p PatchPayload
	if err := json.Unmarshal([]byte(`{"data_vinculacao": null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, ve := p.Changeset()
	if ve == nil || len(ve.Items) != 1 || ve.Items[0].Kind != "not_nullable" {
		t.Fatalf("want not_nullable item, got %+v", ve)
	}
}
