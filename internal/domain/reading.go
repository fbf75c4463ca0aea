package domain

import "time"

// RiskTier clasifica el puntaje de riesgo en tres niveles.
type RiskTier string

const (
	RiskTierLow      RiskTier = "LOW"
	RiskTierModerate RiskTier = "MODERATE"
	RiskTierHigh     RiskTier = "HIGH"
)

// Mensajes por nivel de riesgo. Son texto de contrato: hay colaboradores
// que los muestran tal cual, no se reformulan ni se traducen.
const (
	RiskMessageLow      = "Low risk of heart disease. You are healthy!"
	RiskMessageModerate = "Moderate risk of heart disease."
	RiskMessageHigh     = "High risk of heart disease."
)

// MessageForTier devuelve el mensaje literal asociado al nivel.
func MessageForTier(tier RiskTier) string {
	switch tier {
	case RiskTierHigh:
		return RiskMessageHigh
	case RiskTierModerate:
		return RiskMessageModerate
	default:
		return RiskMessageLow
	}
}

// Reading es una lectura simulada de sensores, condicionada por el nivel
// de riesgo. Se crea una por evaluacion; la persistencia la agrega al
// historial del paciente con su timestamp.
type Reading struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	HeartRate   float64   `json:"heart_rate"`
	SystolicBP  float64   `json:"systolic_bp"`
	DiastolicBP float64   `json:"diastolic_bp"`
	Cholesterol float64   `json:"cholesterol"`
	ECG         float64   `json:"ecg"`
	RiskScore   int       `json:"risk_score"`
	RiskTier    RiskTier  `json:"risk_tier"`
	RiskMessage string    `json:"risk_message"`
	RecordedAt  time.Time `json:"recorded_at"`
}
