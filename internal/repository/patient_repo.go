package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"heart-monitor/internal/domain"
)

type PatientRepository interface {
	Create(ctx context.Context, patient domain.Patient) error
	GetByID(ctx context.Context, id string) (domain.Patient, error)
	UpdateCaregiver(ctx context.Context, id, caregiverName, caregiverEmail string) error
}

type PgPatientRepository struct {
	pool *pgxpool.Pool
}

func NewPgPatientRepository(pool *pgxpool.Pool) *PgPatientRepository {
	return &PgPatientRepository{pool: pool}
}

func (r *PgPatientRepository) Create(ctx context.Context, patient domain.Patient) error {
	const query = `
		INSERT INTO patients (id, email, display_name, caregiver_name, caregiver_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		patient.ID,
		patient.Email,
		patient.DisplayName,
		patient.CaregiverName,
		patient.CaregiverEmail,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	return err
}

func (r *PgPatientRepository) GetByID(ctx context.Context, id string) (domain.Patient, error) {
	const query = `
		SELECT id, email, display_name, caregiver_name, caregiver_email, created_at, updated_at
		FROM patients
		WHERE id = $1
	`

	var p domain.Patient
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.DisplayName,
		&p.CaregiverName,
		&p.CaregiverEmail,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Patient{}, err
	}
	return p, nil
}

func (r *PgPatientRepository) UpdateCaregiver(ctx context.Context, id, caregiverName, caregiverEmail string) error {
	const query = `
		UPDATE patients
		SET caregiver_name = $2, caregiver_email = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id, caregiverName, caregiverEmail)
	return err
}
