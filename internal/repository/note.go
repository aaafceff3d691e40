package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/carelog/carelog-server-go/internal/model"
)

type NoteRepository interface {
	FindByPatient(ctx context.Context, patientID string) ([]model.ClinicianNote, error)
	Create(ctx context.Context, params model.CreateNoteParams) (*model.ClinicianNote, error)
	DeleteByPatient(ctx context.Context, patientID string) error
}

type noteDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type noteRepo struct {
	db noteDB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) FindByPatient(ctx context.Context, patientID string) ([]model.ClinicianNote, error) {
	notes := []model.ClinicianNote{}
	err := r.db.SelectContext(ctx, &notes, `
		SELECT * FROM clinician_notes
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) Create(ctx context.Context, params model.CreateNoteParams) (*model.ClinicianNote, error) {
	var note model.ClinicianNote
	err := r.db.GetContext(ctx, &note, `
		INSERT INTO clinician_notes (patient_id, note)
		VALUES ($1, $2)
		RETURNING *
	`, params.PatientID, params.Note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM clinician_notes WHERE patient_id = $1
	`, patientID)
	return err
}
