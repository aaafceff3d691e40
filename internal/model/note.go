package model

import (
	"time"
)

// ClinicianNote is a free-text note attached to a patient. Append-only.
type ClinicianNote struct {
	ID        string    `db:"id" json:"id"`
	PatientID string    `db:"patient_id" json:"patientId"`
	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateNoteParams struct {
	PatientID string
	Note      string
}
