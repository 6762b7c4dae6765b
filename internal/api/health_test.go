package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealth_Liveness(t *testing.T) {
	r := testRouter(&RouterDeps{Version: "1.2.3", Source: "file"})

	w := doRequest(t, r, http.MethodGet, "/api/v1/health", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp healthResponse
	decodeJSON(t, w, &resp)

	if resp.Status != "ok" || resp.Version != "1.2.3" || resp.Source != "file" {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

func TestReadiness_NoChecker(t *testing.T) {
	r := testRouter(&RouterDeps{})

	w := doRequest(t, r, http.MethodGet, "/api/v1/ready", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp readinessResponse
	decodeJSON(t, w, &resp)

	if resp.Status != "ready" || resp.Checks["registry"] != "static" {
		t.Errorf("unexpected readiness response: %+v", resp)
	}
}

func TestReadiness_CheckerOK(t *testing.T) {
	checker := &mockChecker{
		healthCheckFn: func(_ context.Context) error { return nil },
	}

	r := testRouter(&RouterDeps{Checker: checker})

	w := doRequest(t, r, http.MethodGet, "/api/v1/ready", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReadiness_CheckerFails(t *testing.T) {
	checker := &mockChecker{
		healthCheckFn: func(_ context.Context) error { return errors.New("pool exhausted") },
	}

	r := testRouter(&RouterDeps{Checker: checker})

	w := doRequest(t, r, http.MethodGet, "/api/v1/ready", nil)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}

	var resp readinessResponse
	decodeJSON(t, w, &resp)

	if resp.Status != "unavailable" {
		t.Errorf("unexpected readiness response: %+v", resp)
	}
}
