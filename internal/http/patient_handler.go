package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"heart-monitor/internal/domain"
	"heart-monitor/internal/repository"
	"heart-monitor/internal/service"
)

// PatientHandler mantiene dependencias para endpoints de pacientes.
type PatientHandler struct {
	logger      *zap.Logger
	patients    repository.PatientRepository
	shareTokens *service.ShareTokenService
}

// NewPatientHandler crea una instancia de PatientHandler con sus dependencias.
func NewPatientHandler(logger *zap.Logger, patients repository.PatientRepository, shareTokens *service.ShareTokenService) *PatientHandler {
	return &PatientHandler{
		logger:      logger,
		patients:    patients,
		shareTokens: shareTokens,
	}
}

// CreatePatient maneja POST /patients.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req struct {
		Email          string `json:"email" binding:"required,email"`
		DisplayName    string `json:"display_name" binding:"required"`
		CaregiverName  string `json:"caregiver_name"`
		CaregiverEmail string `json:"caregiver_email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create patient request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now().UTC()
	patient := domain.Patient{
		ID:             uuid.NewString(),
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		CaregiverName:  req.CaregiverName,
		CaregiverEmail: req.CaregiverEmail,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.patients.Create(c.Request.Context(), patient); err != nil {
		h.logger.Error("create patient failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create patient"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"patient": patient})
}

// GetPatient maneja GET /patients/:id.
func (h *PatientHandler) GetPatient(c *gin.Context) {
	patient, err := h.patients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		h.logger.Error("get patient failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

// UpdateCaregiver maneja PUT /patients/:id/caregiver.
func (h *PatientHandler) UpdateCaregiver(c *gin.Context) {
	var req struct {
		CaregiverName  string `json:"caregiver_name" binding:"required"`
		CaregiverEmail string `json:"caregiver_email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update caregiver request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.patients.UpdateCaregiver(c.Request.Context(), c.Param("id"), req.CaregiverName, req.CaregiverEmail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		h.logger.Error("update caregiver failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update caregiver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "caregiver_updated"})
}

// CreateShare maneja POST /patients/:id/share.
func (h *PatientHandler) CreateShare(c *gin.Context) {
	if h.shareTokens == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sharing not configured"})
		return
	}

	patient, err := h.patients.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
			return
		}
		h.logger.Error("get patient for share failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create share"})
		return
	}

	token, err := h.shareTokens.Generate(patient.ID)
	if err != nil {
		h.logger.Error("share token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create share"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"share_token": token})
}

// RevokeShare maneja POST /share/revoke.
func (h *PatientHandler) RevokeShare(c *gin.Context) {
	if h.shareTokens == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sharing not configured"})
		return
	}

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.shareTokens.Revoke(req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "share_revoked"})
}
