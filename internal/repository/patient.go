package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/carelog/carelog-server-go/internal/model"
)

type PatientRepository interface {
	FindByID(ctx context.Context, id string) (*model.Patient, error)
	FindAll(ctx context.Context) ([]model.Patient, error)
	FindVisibleToDoctor(ctx context.Context, doctorEmail string) ([]model.Patient, error)
	Create(ctx context.Context, params model.CreatePatientParams) (*model.Patient, error)
	ReplaceAssignedDoctors(ctx context.Context, id string, doctorEmails []string) (*model.Patient, error)
	Delete(ctx context.Context, id string) error
	CountUnassigned(ctx context.Context) (int64, error)
	BackfillAssignments(ctx context.Context, doctorEmails []string) (int64, error)
}

type patientDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type patientRepo struct {
	db patientDB
}

func NewPatientRepository(db *sqlx.DB) PatientRepository {
	return &patientRepo{db: db}
}

func (r *patientRepo) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `
		SELECT * FROM patients WHERE id = $1
	`, id)
	return HandleNotFound(&patient, err)
}

func (r *patientRepo) FindAll(ctx context.Context) ([]model.Patient, error) {
	patients := []model.Patient{}
	err := r.db.SelectContext(ctx, &patients, `
		SELECT * FROM patients ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// FindVisibleToDoctor applies the visibility invariant: a patient with an
// empty or absent assignment list is visible to every doctor.
func (r *patientRepo) FindVisibleToDoctor(ctx context.Context, doctorEmail string) ([]model.Patient, error) {
	patients := []model.Patient{}
	err := r.db.SelectContext(ctx, &patients, `
		SELECT * FROM patients
		WHERE assigned_doctor_ids IS NULL
		   OR cardinality(assigned_doctor_ids) = 0
		   OR $1 = ANY(assigned_doctor_ids)
		ORDER BY created_at DESC
	`, doctorEmail)
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepo) Create(ctx context.Context, params model.CreatePatientParams) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `
		INSERT INTO patients (id, assigned_doctor_id, assigned_doctor_ids, data)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.ID, params.AssignedDoctorID, pq.StringArray(params.AssignedDoctorIDs), params.Data)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// ReplaceAssignedDoctors replaces the assignment list wholesale.
func (r *patientRepo) ReplaceAssignedDoctors(ctx context.Context, id string, doctorEmails []string) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `
		UPDATE patients SET assigned_doctor_ids = $2
		WHERE id = $1
		RETURNING *
	`, id, pq.StringArray(doctorEmails))
	return HandleNotFound(&patient, err)
}

func (r *patientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM patients WHERE id = $1
	`, id)
	return err
}

func (r *patientRepo) CountUnassigned(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM patients
		WHERE assigned_doctor_ids IS NULL
		   OR cardinality(assigned_doctor_ids) = 0
	`)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// BackfillAssignments assigns every unassigned patient to the given doctor
// list. Idempotent: once assigned, the predicate no longer matches.
func (r *patientRepo) BackfillAssignments(ctx context.Context, doctorEmails []string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE patients SET assigned_doctor_ids = $1
		WHERE assigned_doctor_ids IS NULL
		   OR cardinality(assigned_doctor_ids) = 0
	`, pq.StringArray(doctorEmails))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
