package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"heart-monitor/internal/domain"
	"heart-monitor/internal/repository"
	"heart-monitor/internal/service"
)

// AssessmentHandler mantiene dependencias para evaluaciones de riesgo.
type AssessmentHandler struct {
	logger      *zap.Logger
	assessments *service.AssessmentService
	history     *service.HistoryService
	profiles    repository.HealthProfileRepository
}

// NewAssessmentHandler crea una instancia de AssessmentHandler con sus dependencias.
func NewAssessmentHandler(
	logger *zap.Logger,
	assessments *service.AssessmentService,
	history *service.HistoryService,
	profiles repository.HealthProfileRepository,
) *AssessmentHandler {
	return &AssessmentHandler{
		logger:      logger,
		assessments: assessments,
		history:     history,
		profiles:    profiles,
	}
}

type healthProfileRequest struct {
	AgeGroup          int  `json:"age_group" binding:"required"`
	Male              bool `json:"male"`
	SleepCategory     int  `json:"sleep_category" binding:"required"`
	ExerciseFrequency int  `json:"exercise_frequency" binding:"required"`
	DietType          int  `json:"diet_type" binding:"required"`
	Smoker            bool `json:"smoker"`
	FamilyHistory     struct {
		Coronary      bool `json:"coronary"`
		Diabetes      bool `json:"diabetes"`
		Cholesterol   bool `json:"cholesterol"`
		BloodPressure bool `json:"blood_pressure"`
	} `json:"family_history"`
}

// toDomain arma el perfil. Los ordinales viajan tal cual: el motor tolera
// valores fuera de dominio sin fallar.
func (r healthProfileRequest) toDomain() domain.HealthProfile {
	profile := domain.HealthProfile{
		AgeGroup:          r.AgeGroup,
		Male:              r.Male,
		SleepCategory:     r.SleepCategory,
		ExerciseFrequency: r.ExerciseFrequency,
		DietType:          r.DietType,
		Smoker:            r.Smoker,
	}
	profile.SetFamilyDisease(domain.DiseaseCoronary, r.FamilyHistory.Coronary)
	profile.SetFamilyDisease(domain.DiseaseDiabetes, r.FamilyHistory.Diabetes)
	profile.SetFamilyDisease(domain.DiseaseCholesterol, r.FamilyHistory.Cholesterol)
	profile.SetFamilyDisease(domain.DiseaseBloodPressure, r.FamilyHistory.BloodPressure)
	return profile
}

// CreateAssessment maneja POST /patients/:id/assessments.
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req healthProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reading, err := h.assessments.Assess(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		h.logger.Error("assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not assess"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reading": reading})
}

// GenerateBaseline maneja POST /patients/:id/baseline. Usa la ultima
// encuesta guardada del paciente para condicionar la serie.
func (h *AssessmentHandler) GenerateBaseline(c *gin.Context) {
	var req struct {
		Count           int `json:"count"`
		IntervalMinutes int `json:"interval_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patientID := c.Param("id")
	profile, err := h.profiles.GetByPatientID(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusConflict, gin.H{"error": "no survey on record for patient"})
			return
		}
		h.logger.Error("load profile for baseline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate baseline"})
		return
	}

	readings, err := h.history.GenerateBaseline(
		c.Request.Context(),
		patientID,
		profile,
		req.Count,
		time.Duration(req.IntervalMinutes)*time.Minute,
	)
	if err != nil {
		h.logger.Error("baseline generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate baseline"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"readings": readings, "count": len(readings)})
}
