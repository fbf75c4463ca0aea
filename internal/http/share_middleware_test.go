package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"heart-monitor/internal/domain"
)

func TestSharedReadingsWithToken(t *testing.T) {
	env := newTestEnv(t)
	env.addPatient("p1")
	env.readings.readings = []domain.Reading{
		{ID: "r1", PatientID: "p1", RiskTier: domain.RiskTierLow, RecordedAt: time.Now().UTC()},
	}

	token, err := env.shareSvc.Generate("p1")
	if err != nil {
		t.Fatalf("generate share token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/share/readings?token="+token, nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		PatientID string           `json:"patient_id"`
		Readings  []domain.Reading `json:"readings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PatientID != "p1" || len(resp.Readings) != 1 {
		t.Fatalf("unexpected shared view: %+v", resp)
	}
}

func TestSharedReadingsViaBearerHeader(t *testing.T) {
	env := newTestEnv(t)
	env.addPatient("p1")

	token, err := env.shareSvc.Generate("p1")
	if err != nil {
		t.Fatalf("generate share token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/share/readings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSharedReadingsMissingToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/share/readings", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSharedReadingsRevokedToken(t *testing.T) {
	env := newTestEnv(t)
	env.addPatient("p1")

	token, err := env.shareSvc.Generate("p1")
	if err != nil {
		t.Fatalf("generate share token: %v", err)
	}
	if err := env.shareSvc.Revoke(token); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/share/readings?token="+token, nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", rec.Code)
	}
}

func TestSharedReadingsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/share/readings?token=garbage", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}
