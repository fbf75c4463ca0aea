package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"heart-monitor/internal/domain"
	"heart-monitor/internal/service"
)

type mockPatientRepo struct {
	patients map[string]domain.Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[string]domain.Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, patient domain.Patient) error {
	m.patients[patient.ID] = patient
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id string) (domain.Patient, error) {
	patient, ok := m.patients[id]
	if !ok {
		return domain.Patient{}, pgx.ErrNoRows
	}
	return patient, nil
}

func (m *mockPatientRepo) UpdateCaregiver(_ context.Context, id, name, email string) error {
	patient, ok := m.patients[id]
	if !ok {
		return pgx.ErrNoRows
	}
	patient.CaregiverName = name
	patient.CaregiverEmail = email
	m.patients[id] = patient
	return nil
}

type mockProfileRepo struct {
	profiles map[string]domain.HealthProfile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]domain.HealthProfile)}
}

func (m *mockProfileRepo) Upsert(_ context.Context, patientID string, profile domain.HealthProfile) error {
	m.profiles[patientID] = profile
	return nil
}

func (m *mockProfileRepo) GetByPatientID(_ context.Context, patientID string) (domain.HealthProfile, error) {
	profile, ok := m.profiles[patientID]
	if !ok {
		return domain.HealthProfile{}, pgx.ErrNoRows
	}
	return profile, nil
}

type mockReadingRepo struct {
	readings []domain.Reading
}

func (m *mockReadingRepo) Insert(_ context.Context, reading domain.Reading) error {
	m.readings = append(m.readings, reading)
	return nil
}

func (m *mockReadingRepo) InsertBatch(_ context.Context, readings []domain.Reading) error {
	m.readings = append(m.readings, readings...)
	return nil
}

func (m *mockReadingRepo) ListByPatientID(_ context.Context, patientID string, limit int) ([]domain.Reading, error) {
	var out []domain.Reading
	for i := len(m.readings) - 1; i >= 0; i-- {
		if m.readings[i].PatientID == patientID {
			out = append(out, m.readings[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *mockReadingRepo) LatestByPatientID(_ context.Context, patientID string) (domain.Reading, error) {
	for i := len(m.readings) - 1; i >= 0; i-- {
		if m.readings[i].PatientID == patientID {
			return m.readings[i], nil
		}
	}
	return domain.Reading{}, pgx.ErrNoRows
}

type testEnv struct {
	router   *gin.Engine
	patients *mockPatientRepo
	profiles *mockProfileRepo
	readings *mockReadingRepo
	shareSvc *service.ShareTokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	patients := newMockPatientRepo()
	profiles := newMockProfileRepo()
	readings := &mockReadingRepo{}
	shareSvc := service.NewShareTokenService("test-secret", time.Hour)

	engine := service.NewRiskEngine(nil)
	assessmentSvc := service.NewAssessmentService(logger, engine, patients, profiles, readings, nil, nil, nil, shareSvc, "http://localhost:8080")
	historySvc := service.NewHistoryService(logger, engine, readings, nil)

	router := NewRouter(
		logger,
		NewPatientHandler(logger, patients, shareSvc),
		NewAssessmentHandler(logger, assessmentSvc, historySvc, profiles),
		NewReadingHandler(logger, historySvc),
		shareSvc,
	)

	return &testEnv{
		router:   router,
		patients: patients,
		profiles: profiles,
		readings: readings,
		shareSvc: shareSvc,
	}
}

func (e *testEnv) addPatient(id string) {
	_ = e.patients.Create(context.Background(), domain.Patient{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "Paciente",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
}

func lowRiskBody() []byte {
	return []byte(`{
		"age_group": 1,
		"male": false,
		"sleep_category": 3,
		"exercise_frequency": 3,
		"diet_type": 6,
		"smoker": false,
		"family_history": {}
	}`)
}

func TestCreateAssessmentEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.addPatient("p1")

	req := httptest.NewRequest(http.MethodPost, "/patients/p1/assessments", bytes.NewReader(lowRiskBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Reading domain.Reading `json:"reading"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reading.RiskScore != 6 {
		t.Fatalf("expected score 6, got %d", resp.Reading.RiskScore)
	}
	if resp.Reading.RiskTier != domain.RiskTierLow {
		t.Fatalf("expected LOW tier, got %s", resp.Reading.RiskTier)
	}
	if resp.Reading.RiskMessage != domain.RiskMessageLow {
		t.Fatalf("unexpected message %q", resp.Reading.RiskMessage)
	}
	if len(env.readings.readings) != 1 {
		t.Fatalf("expected reading persisted")
	}
	if _, ok := env.profiles.profiles["p1"]; !ok {
		t.Fatalf("expected survey persisted")
	}
}

func TestCreateAssessmentUnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/patients/ghost/assessments", bytes.NewReader(lowRiskBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateAssessmentInvalidBody(t *testing.T) {
	env := newTestEnv(t)
	env.addPatient("p1")

	req := httptest.NewRequest(http.MethodPost, "/patients/p1/assessments", bytes.NewReader([]byte(`{"male": true}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGenerateBaselineRequiresSurvey(t *testing.T) {
	env := newTestEnv(t)
	env.addPatient("p1")

	req := httptest.NewRequest(http.MethodPost, "/patients/p1/baseline", bytes.NewReader([]byte(`{"count": 3}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without survey, got %d", rec.Code)
	}
}

func TestGenerateBaselineEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.addPatient("p1")

	// Primero una evaluacion para dejar encuesta guardada.
	req := httptest.NewRequest(http.MethodPost, "/patients/p1/assessments", bytes.NewReader(lowRiskBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("assessment setup failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/patients/p1/baseline", bytes.NewReader([]byte(`{"count": 3, "interval_minutes": 60}`)))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body %s", rec.Code, rec.Body.String())
	}
	// 1 de la evaluacion + 3 del baseline.
	if len(env.readings.readings) != 4 {
		t.Fatalf("expected 4 readings, got %d", len(env.readings.readings))
	}
}
