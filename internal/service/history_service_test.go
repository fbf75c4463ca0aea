package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"heart-monitor/internal/domain"
)

type mockReadingCache struct {
	latest map[string]domain.Reading
	getErr error
	setErr error
	sets   int
}

func newMockReadingCache() *mockReadingCache {
	return &mockReadingCache{latest: make(map[string]domain.Reading)}
}

func (m *mockReadingCache) SetLatest(_ context.Context, reading domain.Reading) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.latest[reading.PatientID] = reading
	return nil
}

func (m *mockReadingCache) GetLatest(_ context.Context, patientID string) (domain.Reading, bool, error) {
	if m.getErr != nil {
		return domain.Reading{}, false, m.getErr
	}
	reading, ok := m.latest[patientID]
	return reading, ok, nil
}

func TestGenerateBaselineBackdatesReadings(t *testing.T) {
	readings := &mockReadingRepo{}
	svc := NewHistoryService(zap.NewNop(), NewRiskEngine(nil), readings, nil)

	generated, err := svc.GenerateBaseline(context.Background(), "p1", lowRiskProfile(), 5, time.Hour)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if len(generated) != 5 || len(readings.readings) != 5 {
		t.Fatalf("expected 5 readings, got %d generated and %d stored", len(generated), len(readings.readings))
	}

	now := time.Now().UTC()
	for i, reading := range generated {
		if reading.PatientID != "p1" || reading.ID == "" {
			t.Fatalf("reading %d missing identity: %+v", i, reading)
		}
		if !reading.RecordedAt.Before(now) {
			t.Fatalf("reading %d not backdated: %v", i, reading.RecordedAt)
		}
		if reading.RiskTier != domain.RiskTierLow {
			t.Fatalf("reading %d has tier %s", i, reading.RiskTier)
		}
		if i > 0 && !generated[i-1].RecordedAt.Before(reading.RecordedAt) {
			t.Fatalf("timestamps must ascend, got %v then %v", generated[i-1].RecordedAt, reading.RecordedAt)
		}
	}
}

func TestGenerateBaselineDefaults(t *testing.T) {
	readings := &mockReadingRepo{}
	svc := NewHistoryService(zap.NewNop(), NewRiskEngine(nil), readings, nil)

	generated, err := svc.GenerateBaseline(context.Background(), "p1", lowRiskProfile(), 0, 0)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if len(generated) != 24 {
		t.Fatalf("expected default of 24 readings, got %d", len(generated))
	}
}

func TestLatestPrefersCache(t *testing.T) {
	readings := &mockReadingRepo{}
	cache := newMockReadingCache()
	cached := domain.Reading{ID: "r-cached", PatientID: "p1", RiskTier: domain.RiskTierLow}
	cache.latest["p1"] = cached

	svc := NewHistoryService(zap.NewNop(), NewRiskEngine(nil), readings, cache)

	got, err := svc.Latest(context.Background(), "p1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.ID != "r-cached" {
		t.Fatalf("expected cached reading, got %q", got.ID)
	}
}

func TestLatestFallsBackToRepoAndBackfills(t *testing.T) {
	stored := domain.Reading{ID: "r-db", PatientID: "p1", RiskTier: domain.RiskTierLow, RecordedAt: time.Now().UTC()}
	readings := &mockReadingRepo{readings: []domain.Reading{stored}}
	cache := newMockReadingCache()

	svc := NewHistoryService(zap.NewNop(), NewRiskEngine(nil), readings, cache)

	got, err := svc.Latest(context.Background(), "p1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.ID != "r-db" {
		t.Fatalf("expected stored reading, got %q", got.ID)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache backfill")
	}
}

func TestLatestCacheErrorDegradesToRepo(t *testing.T) {
	stored := domain.Reading{ID: "r-db", PatientID: "p1"}
	readings := &mockReadingRepo{readings: []domain.Reading{stored}}
	cache := newMockReadingCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = cache.getErr

	svc := NewHistoryService(zap.NewNop(), NewRiskEngine(nil), readings, cache)

	got, err := svc.Latest(context.Background(), "p1")
	if err != nil {
		t.Fatalf("latest should survive cache outage: %v", err)
	}
	if got.ID != "r-db" {
		t.Fatalf("expected stored reading, got %q", got.ID)
	}
}

func TestLatestWithoutReadings(t *testing.T) {
	svc := NewHistoryService(zap.NewNop(), NewRiskEngine(nil), &mockReadingRepo{}, nil)

	if _, err := svc.Latest(context.Background(), "p1"); !errors.Is(err, ErrNoReadings) {
		t.Fatalf("expected ErrNoReadings, got %v", err)
	}
}
