package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"heart-monitor/internal/domain"
	"heart-monitor/internal/email"
	"heart-monitor/internal/repository"
)

var ErrPatientNotFound = errors.New("patient not found")

// AssessmentService orquesta una evaluacion completa: puntaje y simulacion
// con el motor, persistencia de encuesta y lectura, cache de la ultima
// lectura y alerta al cuidador cuando el nivel es alto.
type AssessmentService struct {
	logger       *zap.Logger
	engine       *RiskEngine
	patients     repository.PatientRepository
	profiles     repository.HealthProfileRepository
	readings     repository.ReadingRepository
	cache        ReadingCache
	alertSender  email.AlertSender
	alertLimiter AlertRateLimiter
	shareTokens  *ShareTokenService
	baseURL      string
}

func NewAssessmentService(
	logger *zap.Logger,
	engine *RiskEngine,
	patients repository.PatientRepository,
	profiles repository.HealthProfileRepository,
	readings repository.ReadingRepository,
	cache ReadingCache,
	alertSender email.AlertSender,
	alertLimiter AlertRateLimiter,
	shareTokens *ShareTokenService,
	baseURL string,
) *AssessmentService {
	if engine == nil {
		engine = NewRiskEngine(nil)
	}
	if alertLimiter == nil {
		alertLimiter = NewAlertRateLimiter(30*time.Minute, 1)
	}
	return &AssessmentService{
		logger:       logger,
		engine:       engine,
		patients:     patients,
		profiles:     profiles,
		readings:     readings,
		cache:        cache,
		alertSender:  alertSender,
		alertLimiter: alertLimiter,
		shareTokens:  shareTokens,
		baseURL:      baseURL,
	}
}

// Assess evalua el perfil del paciente y devuelve la lectura ya persistida.
// La entrega de la alerta es best effort: si falla, la lectura ya quedo
// guardada y el error solo se loguea.
func (s *AssessmentService) Assess(ctx context.Context, patientID string, profile domain.HealthProfile) (domain.Reading, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reading{}, ErrPatientNotFound
		}
		return domain.Reading{}, err
	}

	reading := s.engine.Assess(profile)
	reading.ID = uuid.NewString()
	reading.PatientID = patient.ID
	reading.RecordedAt = time.Now().UTC()

	if err := s.readings.Insert(ctx, reading); err != nil {
		return domain.Reading{}, err
	}

	if s.profiles != nil {
		if err := s.profiles.Upsert(ctx, patient.ID, profile); err != nil {
			s.logger.Warn("profile upsert failed", zap.String("patient_id", patient.ID), zap.Error(err))
		}
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, reading); err != nil {
			s.logger.Warn("latest reading cache failed", zap.String("patient_id", patient.ID), zap.Error(err))
		}
	}

	if reading.RiskTier == domain.RiskTierHigh {
		s.notifyCaregiver(ctx, patient, reading)
	}

	return reading, nil
}

func (s *AssessmentService) notifyCaregiver(ctx context.Context, patient domain.Patient, reading domain.Reading) {
	if s.alertSender == nil || patient.CaregiverEmail == "" {
		return
	}
	// La ventana se consume antes del envio: un intento fallido tambien
	// cuenta, asi un SMTP caido no recibe un reintento por cada lectura
	// alta hasta que cierre la ventana.
	if !s.alertLimiter.Allow(patient.ID) {
		s.logger.Info("caregiver alert suppressed by rate limit", zap.String("patient_id", patient.ID))
		return
	}

	shareURL := ""
	if s.shareTokens != nil {
		token, err := s.shareTokens.Generate(patient.ID)
		if err != nil {
			s.logger.Warn("share token for alert failed", zap.String("patient_id", patient.ID), zap.Error(err))
		} else {
			shareURL = fmt.Sprintf("%s/share/readings?token=%s", s.baseURL, token)
		}
	}

	if err := s.alertSender.SendRiskAlert(ctx, patient.CaregiverEmail, patient.DisplayName, reading, shareURL); err != nil {
		s.logger.Error("caregiver alert failed",
			zap.String("patient_id", patient.ID),
			zap.String("caregiver_email", patient.CaregiverEmail),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("caregiver alert sent",
		zap.String("patient_id", patient.ID),
		zap.Int("risk_score", reading.RiskScore),
	)
}
