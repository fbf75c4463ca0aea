package service

import (
	"heart-monitor/internal/domain"
	"heart-monitor/internal/random"
)

// RiskEngine encapsula el puntaje de riesgo cardiovascular y la simulacion
// de lecturas de sensores condicionada por nivel. El puntaje es una funcion
// pura del perfil; solo la simulacion consume el sampler.
type RiskEngine struct {
	sampler *random.UniformSampler
}

// NewRiskEngine construye el motor con el sampler inyectado. Con nil crea
// uno propio.
func NewRiskEngine(sampler *random.UniformSampler) *RiskEngine {
	if sampler == nil {
		sampler = random.NewUniformSampler()
	}
	return &RiskEngine{sampler: sampler}
}

// Umbrales de clasificacion del puntaje.
const (
	moderateRiskThreshold = 10
	highRiskThreshold     = 18
)

// vitalRanges define los intervalos de muestreo de cada signo vital.
type vitalRanges struct {
	heartRate   [2]float64
	systolicBP  [2]float64
	diastolicBP [2]float64
	cholesterol [2]float64
	ecg         [2]float64
}

var tierRanges = map[domain.RiskTier]vitalRanges{
	domain.RiskTierLow: {
		heartRate:   [2]float64{60, 80},
		systolicBP:  [2]float64{110, 120},
		diastolicBP: [2]float64{70, 80},
		cholesterol: [2]float64{150, 200},
		ecg:         [2]float64{0.05, 0.15},
	},
	domain.RiskTierModerate: {
		heartRate:   [2]float64{80, 95},
		systolicBP:  [2]float64{120, 135},
		diastolicBP: [2]float64{80, 90},
		cholesterol: [2]float64{200, 240},
		ecg:         [2]float64{0.02, 0.18},
	},
	domain.RiskTierHigh: {
		heartRate:   [2]float64{95, 120},
		systolicBP:  [2]float64{135, 160},
		diastolicBP: [2]float64{90, 110},
		cholesterol: [2]float64{240, 300},
		ecg:         [2]float64{-0.1, 0.3},
	},
}

// Score calcula el puntaje entero de riesgo sumando el aporte independiente
// de cada factor del perfil. Todas las reglas aplican siempre; no hay corte
// temprano. Valores ordinales fuera de dominio aportan cero en lugar de
// fallar, para degradar con gracia ante datos malformados rio arriba.
func (e *RiskEngine) Score(p domain.HealthProfile) int {
	score := 0

	// Edad.
	switch {
	case p.AgeGroup == domain.AgeGroup18to24 || p.AgeGroup == domain.AgeGroup25to34:
		score += 1
	case p.AgeGroup == domain.AgeGroup35to44 || p.AgeGroup == domain.AgeGroup45to54:
		score += 2
	default:
		score += 3
	}

	// Sexo asignado al nacer, cruzado con edad.
	if !p.Male {
		if p.AgeGroup <= domain.AgeGroup35to44 {
			score += 1
		} else {
			score += 3
		}
	} else {
		if p.AgeGroup <= domain.AgeGroup35to44 {
			score += 2
		} else {
			score += 3
		}
	}

	// Sueño: dormir muy poco o demasiado pesa igual.
	switch {
	case p.SleepCategory == domain.SleepUnder4Hours || p.SleepCategory == domain.SleepOver8Hours:
		score += 3
	case p.SleepCategory == domain.Sleep4to5Hours:
		score += 2
	default:
		score += 1
	}

	// Ejercicio.
	switch p.ExerciseFrequency {
	case domain.ExerciseNever:
		score += 3
	case domain.Exercise1to2PerWeek:
		score += 2
	default:
		score += 1
	}

	// Historial familiar: cada enfermedad suma por separado.
	if p.HasFamilyDisease(domain.DiseaseCoronary) {
		score += 2
	}
	if p.HasFamilyDisease(domain.DiseaseDiabetes) {
		score += 1
	}
	if p.HasFamilyDisease(domain.DiseaseCholesterol) {
		score += 2
	}
	if p.HasFamilyDisease(domain.DiseaseBloodPressure) {
		score += 2
	}

	// Dieta. Un valor fuera de 1..6 no matchea ninguna regla y aporta 0.
	switch p.DietType {
	case domain.DietWestern:
		score += 3
	case domain.DietHighProtein, domain.DietLowCarb, domain.DietVegetarian, domain.DietBalanced:
		score += 1
	case domain.DietVegan:
		score += 2
	}

	// Tabaquismo.
	if p.Smoker {
		score += 3
	} else {
		score += 1
	}

	return score
}

// TierForScore clasifica un puntaje en su nivel de riesgo. Los limites son
// cerrados por arriba: 10 ya es moderado y 18 ya es alto.
func (e *RiskEngine) TierForScore(score int) domain.RiskTier {
	switch {
	case score >= highRiskThreshold:
		return domain.RiskTierHigh
	case score >= moderateRiskThreshold:
		return domain.RiskTierModerate
	default:
		return domain.RiskTierLow
	}
}

// Assess compone puntaje, nivel y cinco muestras independientes de signos
// vitales dentro de los rangos del nivel. Siempre devuelve una lectura;
// no tiene modos de falla ante un perfil bien formado.
func (e *RiskEngine) Assess(p domain.HealthProfile) domain.Reading {
	score := e.Score(p)
	tier := e.TierForScore(score)
	ranges := tierRanges[tier]

	return domain.Reading{
		HeartRate:   e.sampler.Sample(ranges.heartRate[0], ranges.heartRate[1]),
		SystolicBP:  e.sampler.Sample(ranges.systolicBP[0], ranges.systolicBP[1]),
		DiastolicBP: e.sampler.Sample(ranges.diastolicBP[0], ranges.diastolicBP[1]),
		Cholesterol: e.sampler.Sample(ranges.cholesterol[0], ranges.cholesterol[1]),
		ECG:         e.sampler.Sample(ranges.ecg[0], ranges.ecg[1]),
		RiskScore:   score,
		RiskTier:    tier,
		RiskMessage: domain.MessageForTier(tier),
	}
}
