package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carelog/carelog-server-go/internal/model"
)

type CareLogRepository interface {
	FindByPatient(ctx context.Context, patientID string) ([]model.CareLog, error)
	FindByPatientSince(ctx context.Context, patientID string, since time.Time) ([]model.CareLog, error)
	Create(ctx context.Context, params model.CreateCareLogParams) (*model.CareLog, error)
	DeleteByPatient(ctx context.Context, patientID string) error
}

type careLogDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type careLogRepo struct {
	db careLogDB
}

func NewCareLogRepository(db *sqlx.DB) CareLogRepository {
	return &careLogRepo{db: db}
}

// FindByPatient returns all logs, most recent first.
func (r *careLogRepo) FindByPatient(ctx context.Context, patientID string) ([]model.CareLog, error) {
	logs := []model.CareLog{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM care_logs
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByPatientSince returns logs inside the window, oldest first. The
// analysis path consumes these in chronological order.
func (r *careLogRepo) FindByPatientSince(ctx context.Context, patientID string, since time.Time) ([]model.CareLog, error) {
	logs := []model.CareLog{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM care_logs
		WHERE patient_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`, patientID, since)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *careLogRepo) Create(ctx context.Context, params model.CreateCareLogParams) (*model.CareLog, error) {
	var entry model.CareLog
	err := r.db.GetContext(ctx, &entry, `
		INSERT INTO care_logs (
			patient_id, mood, sleep_start, sleep_end, hydration, food, meds,
			antecedent, behavior, consequence, note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING *
	`, params.PatientID, params.Mood, params.SleepStart, params.SleepEnd,
		params.Hydration, params.Food, params.Meds, params.Antecedent,
		params.Behavior, params.Consequence, params.Note)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *careLogRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM care_logs WHERE patient_id = $1
	`, patientID)
	return err
}
