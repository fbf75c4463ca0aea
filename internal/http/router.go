package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heart-monitor/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(
	logger *zap.Logger,
	patientH *PatientHandler,
	assessmentH *AssessmentHandler,
	readingH *ReadingHandler,
	shareSvc *service.ShareTokenService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	patients := r.Group("/patients")
	patients.POST("", patientH.CreatePatient)
	patients.GET("/:id", patientH.GetPatient)
	patients.PUT("/:id/caregiver", patientH.UpdateCaregiver)
	patients.POST("/:id/assessments", assessmentH.CreateAssessment)
	patients.POST("/:id/baseline", assessmentH.GenerateBaseline)
	patients.GET("/:id/readings", readingH.ListReadings)
	patients.GET("/:id/readings/latest", readingH.LatestReading)
	patients.POST("/:id/share", patientH.CreateShare)

	share := r.Group("/share")
	share.POST("/revoke", patientH.RevokeShare)
	share.GET("/readings", ShareTokenMiddleware(shareSvc), readingH.SharedReadings)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
