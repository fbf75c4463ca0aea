package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heart-monitor/internal/service"
)

// ReadingHandler mantiene dependencias para consultar el historial.
type ReadingHandler struct {
	logger  *zap.Logger
	history *service.HistoryService
}

// NewReadingHandler crea una instancia de ReadingHandler con sus dependencias.
func NewReadingHandler(logger *zap.Logger, history *service.HistoryService) *ReadingHandler {
	return &ReadingHandler{
		logger:  logger,
		history: history,
	}
}

// ListReadings maneja GET /patients/:id/readings.
func (h *ReadingHandler) ListReadings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	readings, err := h.history.List(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.logger.Error("list readings failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list readings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings, "count": len(readings)})
}

// LatestReading maneja GET /patients/:id/readings/latest.
func (h *ReadingHandler) LatestReading(c *gin.Context) {
	reading, err := h.history.Latest(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNoReadings) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no readings recorded"})
			return
		}
		h.logger.Error("latest reading failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get latest reading"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reading": reading})
}

// SharedReadings maneja GET /share/readings: la vista del cuidador,
// autorizada por el middleware de tokens compartidos.
func (h *ReadingHandler) SharedReadings(c *gin.Context) {
	claims, ok := GetShareClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing share token"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	readings, err := h.history.List(c.Request.Context(), claims.PatientID, limit)
	if err != nil {
		h.logger.Error("shared readings failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list readings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient_id": claims.PatientID, "readings": readings, "count": len(readings)})
}
