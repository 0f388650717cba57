// internal/problem/problem_test.go
//
// Wire-shape tests for the problem payload.  The JSON member names are a
// client contract, so these tests decode into raw maps on purpose.
//
// Run: go test ./internal/problem -v

package problem

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/ppghub/ppghub/internal/store"
)

func TestNotFoundShape(t *testing.T) {
	r := httptest.NewRequest("GET", "/instituicoes/999", nil)
	r.Header.Set("X-Request-Id", "req-1")

	w := httptest.NewRecorder()
	Write(w, NotFound(r, "Instituição não encontrada"))

	if w.Code != 404 {
		t.Fatalf("status: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json; charset=utf-8" {
		t.Fatalf("content-type: %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["type"] != "urn:ppghub:errors:not_found" {
		t.Fatalf("type: %v", body["type"])
	}
	if body["status"] != float64(404) || body["title"] != "Not Found" {
		t.Fatalf("status/title: %v/%v", body["status"], body["title"])
	}
	if body["instance"] != "/instituicoes/999" {
		t.Fatalf("instance: %v", body["instance"])
	}
	meta := body["meta"].(map[string]any)
	if meta["method"] != "GET" || meta["request_id"] != "req-1" {
		t.Fatalf("meta: %v", meta)
	}
}

func TestValidationListsEveryField(t *testing.T) {
	r := httptest.NewRequest("POST", "/instituicoes", nil)

	ve := (&ValidationError{}).
		Add("nome_completo", "campo obrigatório", "required").
		Add("tipo", "valor fora do conjunto permitido", "oneof")
	pd := Validation(r, ve.Items)

	raw, _ := json.Marshal(pd)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	items := body["errors"].(map[string]any)["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("want both fields listed, got %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["field"] != "nome_completo" || first["kind"] != "required" {
		t.Fatalf("first item: %v", first)
	}
}

func TestConflictHint(t *testing.T) {
	r := httptest.NewRequest("POST", "/instituicoes", nil)
	pd := Conflict(r, &store.ConstraintError{
		Kind: store.KindDuplicate, Code: 1062,
		Key: "uq_instituicao_codigo", Field: "codigo", Value: "UEPB",
	})

	hint := pd.Errors["hint"].(map[string]any)
	if hint["field"] != "codigo" || hint["value"] != "UEPB" {
		t.Fatalf("hint: %v", hint)
	}
	if pd.Status != 409 || pd.Type != "urn:ppghub:errors:conflict" {
		t.Fatalf("status/type: %d/%s", pd.Status, pd.Type)
	}
}

func TestConflictWithoutHint(t *testing.T) {
	r := httptest.NewRequest("PUT", "/roles/3", nil)
	pd := Conflict(r, &store.ConstraintError{Kind: store.KindForeignKey, Code: 1452})

	if _, ok := pd.Errors["hint"]; ok {
		t.Fatalf("unparsable violations must omit the hint")
	}
}

func TestInternalDebugToggle(t *testing.T) {
	r := httptest.NewRequest("GET", "/instituicoes", nil)
	boom := errors.New("dial tcp 10.0.0.5:3306: connection refused")

	if pd := Internal(r, boom, false); pd.Detail != "Ocorreu um erro interno no servidor." {
		t.Fatalf("production detail leaked: %q", pd.Detail)
	}
	if pd := Internal(r, boom, true); pd.Detail != boom.Error() {
		t.Fatalf("debug detail missing: %q", pd.Detail)
	}
}
