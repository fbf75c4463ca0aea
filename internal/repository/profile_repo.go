package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"heart-monitor/internal/domain"
)

// HealthProfileRepository persiste la ultima encuesta enviada por paciente.
type HealthProfileRepository interface {
	Upsert(ctx context.Context, patientID string, profile domain.HealthProfile) error
	GetByPatientID(ctx context.Context, patientID string) (domain.HealthProfile, error)
}

type PgHealthProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgHealthProfileRepository(pool *pgxpool.Pool) *PgHealthProfileRepository {
	return &PgHealthProfileRepository{pool: pool}
}

func (r *PgHealthProfileRepository) Upsert(ctx context.Context, patientID string, profile domain.HealthProfile) error {
	const query = `
		INSERT INTO health_profiles (
			patient_id, age_group, male, sleep_category, exercise_frequency,
			diet_type, smoker, history_coronary, history_diabetes,
			history_cholesterol, history_blood_pressure, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (patient_id)
		DO UPDATE SET
			age_group = EXCLUDED.age_group,
			male = EXCLUDED.male,
			sleep_category = EXCLUDED.sleep_category,
			exercise_frequency = EXCLUDED.exercise_frequency,
			diet_type = EXCLUDED.diet_type,
			smoker = EXCLUDED.smoker,
			history_coronary = EXCLUDED.history_coronary,
			history_diabetes = EXCLUDED.history_diabetes,
			history_cholesterol = EXCLUDED.history_cholesterol,
			history_blood_pressure = EXCLUDED.history_blood_pressure,
			updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query,
		patientID,
		profile.AgeGroup,
		profile.Male,
		profile.SleepCategory,
		profile.ExerciseFrequency,
		profile.DietType,
		profile.Smoker,
		profile.HasFamilyDisease(domain.DiseaseCoronary),
		profile.HasFamilyDisease(domain.DiseaseDiabetes),
		profile.HasFamilyDisease(domain.DiseaseCholesterol),
		profile.HasFamilyDisease(domain.DiseaseBloodPressure),
	)
	return err
}

func (r *PgHealthProfileRepository) GetByPatientID(ctx context.Context, patientID string) (domain.HealthProfile, error) {
	const query = `
		SELECT age_group, male, sleep_category, exercise_frequency, diet_type, smoker,
			history_coronary, history_diabetes, history_cholesterol, history_blood_pressure
		FROM health_profiles
		WHERE patient_id = $1
	`

	var (
		p       domain.HealthProfile
		history [domain.FamilyDiseaseCount]bool
	)
	err := r.pool.QueryRow(ctx, query, patientID).Scan(
		&p.AgeGroup,
		&p.Male,
		&p.SleepCategory,
		&p.ExerciseFrequency,
		&p.DietType,
		&p.Smoker,
		&history[domain.DiseaseCoronary],
		&history[domain.DiseaseDiabetes],
		&history[domain.DiseaseCholesterol],
		&history[domain.DiseaseBloodPressure],
	)
	if err != nil {
		return domain.HealthProfile{}, err
	}
	p.FamilyHistory = history
	return p, nil
}
