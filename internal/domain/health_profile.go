package domain

// Grupos de edad del cuestionario (pregunta 1).
const (
	AgeGroup18to24 = 1
	AgeGroup25to34 = 2
	AgeGroup35to44 = 3
	AgeGroup45to54 = 4
	AgeGroup55to64 = 5
	AgeGroup65Plus = 6
)

// Categorias de horas de sueño (pregunta 3).
const (
	SleepUnder4Hours = 1
	Sleep4to5Hours   = 2
	Sleep6to7Hours   = 3
	Sleep7to8Hours   = 4
	SleepOver8Hours  = 5
)

// Frecuencia de ejercicio semanal (pregunta 4).
const (
	ExerciseNever       = 1
	Exercise1to2PerWeek = 2
	Exercise3to5PerWeek = 3
	Exercise6to7PerWeek = 4
)

// Tipos de dieta (pregunta 6).
const (
	DietHighProtein = 1
	DietLowCarb     = 2
	DietVegetarian  = 3
	DietWestern     = 4
	DietVegan       = 5
	DietBalanced    = 6
)

// Indices del historial familiar de enfermedades (pregunta 5).
const (
	DiseaseCoronary      = 0
	DiseaseDiabetes      = 1
	DiseaseCholesterol   = 2
	DiseaseBloodPressure = 3

	FamilyDiseaseCount = 4
)

// familyDiseaseLabels esta co-indexado con FamilyHistory; el orden es contrato.
var familyDiseaseLabels = [FamilyDiseaseCount]string{
	"Heart attack or coronary artery disease",
	"Diabetes (Type 2)",
	"High cholesterol",
	"High blood pressure",
}

// HealthProfile guarda las respuestas del cuestionario de estilo de vida.
// Es un value object: se arma campo a campo durante la encuesta y queda
// logicamente inmutable al pasarlo al motor de riesgo.
type HealthProfile struct {
	AgeGroup          int                      `json:"age_group"`
	Male              bool                     `json:"male"`
	SleepCategory     int                      `json:"sleep_category"`
	ExerciseFrequency int                      `json:"exercise_frequency"`
	DietType          int                      `json:"diet_type"`
	Smoker            bool                     `json:"smoker"`
	FamilyHistory     [FamilyDiseaseCount]bool `json:"family_history"`
}

// HasFamilyDisease indica si la enfermedad del indice dado figura en el
// historial familiar. Un indice fuera de [0,4) se reporta como ausente,
// nunca como error.
func (p HealthProfile) HasFamilyDisease(index int) bool {
	if index < 0 || index >= FamilyDiseaseCount {
		return false
	}
	return p.FamilyHistory[index]
}

// SetFamilyDisease marca o desmarca una enfermedad del historial.
// Los indices fuera de rango se ignoran en silencio.
func (p *HealthProfile) SetFamilyDisease(index int, present bool) {
	if index < 0 || index >= FamilyDiseaseCount {
		return
	}
	p.FamilyHistory[index] = present
}

// FamilyDiseaseLabel devuelve la etiqueta legible de la enfermedad del
// indice dado, o cadena vacia si el indice queda fuera de rango.
func FamilyDiseaseLabel(index int) string {
	if index < 0 || index >= FamilyDiseaseCount {
		return ""
	}
	return familyDiseaseLabels[index]
}

// FamilyDiseaseLabels devuelve las etiquetas en el orden de indexado.
func FamilyDiseaseLabels() []string {
	labels := make([]string, FamilyDiseaseCount)
	copy(labels, familyDiseaseLabels[:])
	return labels
}
