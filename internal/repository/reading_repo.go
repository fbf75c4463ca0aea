package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"heart-monitor/internal/domain"
)

// ReadingRepository es el log de lecturas simuladas con timestamp,
// el reemplazo del viejo CSV de la aplicacion de escritorio.
type ReadingRepository interface {
	Insert(ctx context.Context, reading domain.Reading) error
	InsertBatch(ctx context.Context, readings []domain.Reading) error
	ListByPatientID(ctx context.Context, patientID string, limit int) ([]domain.Reading, error)
	LatestByPatientID(ctx context.Context, patientID string) (domain.Reading, error)
}

type PgReadingRepository struct {
	pool *pgxpool.Pool
}

func NewPgReadingRepository(pool *pgxpool.Pool) *PgReadingRepository {
	return &PgReadingRepository{pool: pool}
}

const insertReadingQuery = `
	INSERT INTO readings (
		id, patient_id, heart_rate, systolic_bp, diastolic_bp,
		cholesterol, ecg, risk_score, risk_tier, risk_message, recorded_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (r *PgReadingRepository) Insert(ctx context.Context, reading domain.Reading) error {
	_, err := r.pool.Exec(ctx, insertReadingQuery,
		reading.ID,
		reading.PatientID,
		reading.HeartRate,
		reading.SystolicBP,
		reading.DiastolicBP,
		reading.Cholesterol,
		reading.ECG,
		reading.RiskScore,
		string(reading.RiskTier),
		reading.RiskMessage,
		reading.RecordedAt,
	)
	return err
}

func (r *PgReadingRepository) InsertBatch(ctx context.Context, readings []domain.Reading) error {
	if len(readings) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, reading := range readings {
		if _, err := tx.Exec(ctx, insertReadingQuery,
			reading.ID,
			reading.PatientID,
			reading.HeartRate,
			reading.SystolicBP,
			reading.DiastolicBP,
			reading.Cholesterol,
			reading.ECG,
			reading.RiskScore,
			string(reading.RiskTier),
			reading.RiskMessage,
			reading.RecordedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PgReadingRepository) ListByPatientID(ctx context.Context, patientID string, limit int) ([]domain.Reading, error) {
	const query = `
		SELECT id, patient_id, heart_rate, systolic_bp, diastolic_bp,
			cholesterol, ecg, risk_score, risk_tier, risk_message, recorded_at
		FROM readings
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, query, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []domain.Reading
	for rows.Next() {
		var (
			reading domain.Reading
			tier    string
		)
		if err := rows.Scan(
			&reading.ID,
			&reading.PatientID,
			&reading.HeartRate,
			&reading.SystolicBP,
			&reading.DiastolicBP,
			&reading.Cholesterol,
			&reading.ECG,
			&reading.RiskScore,
			&tier,
			&reading.RiskMessage,
			&reading.RecordedAt,
		); err != nil {
			return nil, err
		}
		reading.RiskTier = domain.RiskTier(tier)
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return readings, nil
}

func (r *PgReadingRepository) LatestByPatientID(ctx context.Context, patientID string) (domain.Reading, error) {
	const query = `
		SELECT id, patient_id, heart_rate, systolic_bp, diastolic_bp,
			cholesterol, ecg, risk_score, risk_tier, risk_message, recorded_at
		FROM readings
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var (
		reading domain.Reading
		tier    string
	)
	err := r.pool.QueryRow(ctx, query, patientID).Scan(
		&reading.ID,
		&reading.PatientID,
		&reading.HeartRate,
		&reading.SystolicBP,
		&reading.DiastolicBP,
		&reading.Cholesterol,
		&reading.ECG,
		&reading.RiskScore,
		&tier,
		&reading.RiskMessage,
		&reading.RecordedAt,
	)
	if err != nil {
		return domain.Reading{}, err
	}
	reading.RiskTier = domain.RiskTier(tier)
	return reading, nil
}
