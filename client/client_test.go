package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/export" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var sel Selection
		if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
			t.Errorf("decoding selection: %v", err)
		}

		if len(sel.Interesting) != 1 || sel.Interesting[0] != "I1" {
			t.Errorf("unexpected selection: %+v", sel)
		}

		json.NewEncoder(w).Encode(TAMDocument{ //nolint:errcheck
			Nodes: []TAMNode{{ID: 0, Name: "Ada", Generation: 0}},
			Links: []TAMLink{},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	doc, err := c.Export(context.Background(), Selection{Interesting: []string{"I1"}})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if len(doc.Nodes) != 1 || doc.Nodes[0].Name != "Ada" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestExport_EmptySelectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"code":    "empty_selection",
			"message": "selection is empty",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Export(context.Background(), Selection{})
	if err == nil {
		t.Fatal("expected error")
	}

	if !IsEmptySelection(err) {
		t.Errorf("expected empty selection error, got %v", err)
	}
}

func TestPeopleList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/people" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		if q := r.URL.Query(); q.Get("q") != "ada" || q.Get("limit") != "10" || q.Get("offset") != "20" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}

		json.NewEncoder(w).Encode(ListPeopleResponse{ //nolint:errcheck
			People:  []PersonSummary{{ID: "I1", Name: "Ada"}},
			HasMore: true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	resp, err := c.People.List(context.Background(), ListOptions{Query: "ada", Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(resp.People) != 1 || !resp.HasMore {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestPeopleGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
			"code":    "not_found",
			"message": "person not found",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.People.Get(context.Background(), "NOPE")
	if !IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestPeopleRelatives(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/people/I1/relatives" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode(Relatives{Parents: []string{"I2", "I3"}}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)

	rel, err := c.People.Relatives(context.Background(), "I1")
	if err != nil {
		t.Fatalf("Relatives: %v", err)
	}

	if len(rel.Parents) != 2 {
		t.Errorf("unexpected relatives: %+v", rel)
	}
}

func TestAPIError_FallbackOnNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream gone")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}

	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Code != "unknown" || apiErr.Message != "upstream gone" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}
