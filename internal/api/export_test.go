package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/kinviz/kingraph/internal/models"
)

func TestExport_OK(t *testing.T) {
	var gotSel models.Selection

	svc := &mockExportService{
		exportFn: func(_ context.Context, sel models.Selection) (*models.TAMDocument, error) {
			gotSel = sel

			return &models.TAMDocument{
				Nodes: []models.TAMNode{{ID: 0, Name: "Ada", Generation: 0}},
				Links: []models.TAMLink{},
			}, nil
		},
	}

	r := testRouter(&RouterDeps{Export: svc})

	w := doRequest(t, r, http.MethodPost, "/api/v1/export", map[string]any{
		"interesting_people": []string{"I1"},
		"edge_people":        []string{"E1"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(gotSel.Interesting) != 1 || gotSel.Interesting[0] != "I1" {
		t.Errorf("selection not passed through: %+v", gotSel)
	}

	var doc models.TAMDocument
	decodeJSON(t, w, &doc)

	if len(doc.Nodes) != 1 || doc.Nodes[0].Name != "Ada" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestExport_EmptySelection(t *testing.T) {
	svc := &mockExportService{
		exportFn: func(_ context.Context, _ models.Selection) (*models.TAMDocument, error) {
			return nil, models.ErrSelectionEmpty
		},
	}

	r := testRouter(&RouterDeps{Export: svc})

	w := doRequest(t, r, http.MethodPost, "/api/v1/export", map[string]any{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code string `json:"code"`
	}
	decodeJSON(t, w, &resp)

	if resp.Code != ErrCodeEmptySelection {
		t.Errorf("expected code %q, got %q", ErrCodeEmptySelection, resp.Code)
	}
}

func TestExport_InvalidBody(t *testing.T) {
	svc := &mockExportService{
		exportFn: func(_ context.Context, _ models.Selection) (*models.TAMDocument, error) {
			t.Fatal("service should not be called on malformed input")

			return nil, nil
		},
	}

	r := testRouter(&RouterDeps{Export: svc})

	w := doRequest(t, r, http.MethodPost, "/api/v1/export", "not an object")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestExport_InternalError(t *testing.T) {
	svc := &mockExportService{
		exportFn: func(_ context.Context, _ models.Selection) (*models.TAMDocument, error) {
			return nil, errors.New("registry unreachable")
		},
	}

	r := testRouter(&RouterDeps{Export: svc})

	w := doRequest(t, r, http.MethodPost, "/api/v1/export", map[string]any{
		"interesting_people": []string{"I1"},
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}

	if body := w.Body.String(); !json.Valid([]byte(body)) {
		t.Errorf("error response is not JSON: %s", body)
	}
}
