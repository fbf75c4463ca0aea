package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"heart-monitor/internal/domain"
	"heart-monitor/internal/repository"
)

var ErrNoReadings = errors.New("no readings recorded")

// HistoryService sirve el historial de lecturas y genera series sinteticas
// para que las vistas de tendencia tengan datos desde el primer dia.
type HistoryService struct {
	logger   *zap.Logger
	engine   *RiskEngine
	readings repository.ReadingRepository
	cache    ReadingCache
}

func NewHistoryService(logger *zap.Logger, engine *RiskEngine, readings repository.ReadingRepository, cache ReadingCache) *HistoryService {
	if engine == nil {
		engine = NewRiskEngine(nil)
	}
	return &HistoryService{
		logger:   logger,
		engine:   engine,
		readings: readings,
		cache:    cache,
	}
}

// List devuelve las lecturas del paciente, las mas recientes primero.
func (s *HistoryService) List(ctx context.Context, patientID string, limit int) ([]domain.Reading, error) {
	return s.readings.ListByPatientID(ctx, patientID, limit)
}

// Latest devuelve la ultima lectura, primero desde cache y si no desde la
// base, repoblando el cache en ese caso.
func (s *HistoryService) Latest(ctx context.Context, patientID string) (domain.Reading, error) {
	if s.cache != nil {
		reading, ok, err := s.cache.GetLatest(ctx, patientID)
		if err != nil {
			s.logger.Warn("latest reading cache read failed", zap.String("patient_id", patientID), zap.Error(err))
		} else if ok {
			return reading, nil
		}
	}

	reading, err := s.readings.LatestByPatientID(ctx, patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reading{}, ErrNoReadings
		}
		return domain.Reading{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, reading); err != nil {
			s.logger.Warn("latest reading cache backfill failed", zap.String("patient_id", patientID), zap.Error(err))
		}
	}
	return reading, nil
}

// GenerateBaseline crea count lecturas retro-fechadas a intervalos fijos,
// todas condicionadas por el nivel de riesgo actual del perfil.
func (s *HistoryService) GenerateBaseline(ctx context.Context, patientID string, profile domain.HealthProfile, count int, interval time.Duration) ([]domain.Reading, error) {
	if count <= 0 {
		count = 24
	}
	if interval <= 0 {
		interval = time.Hour
	}

	now := time.Now().UTC()
	readings := make([]domain.Reading, 0, count)
	for i := 0; i < count; i++ {
		reading := s.engine.Assess(profile)
		reading.ID = uuid.NewString()
		reading.PatientID = patientID
		// La mas vieja queda count intervalos atras de now; la mas nueva, uno.
		reading.RecordedAt = now.Add(-time.Duration(count-i) * interval)
		readings = append(readings, reading)
	}

	if err := s.readings.InsertBatch(ctx, readings); err != nil {
		return nil, err
	}

	s.logger.Info("baseline readings generated",
		zap.String("patient_id", patientID),
		zap.Int("count", count),
		zap.Duration("interval", interval),
	)
	return readings, nil
}
