package model

import (
	"time"
)

// CareLog is a single daily observation. All observation fields are
// caller-supplied and optional; content is stored verbatim without
// validation. Rows are append-only and only removed by the patient cascade.
type CareLog struct {
	ID          string    `db:"id" json:"id"`
	PatientID   string    `db:"patient_id" json:"patientId"`
	Mood        string    `db:"mood" json:"mood,omitempty"`
	SleepStart  string    `db:"sleep_start" json:"sleepStart,omitempty"`
	SleepEnd    string    `db:"sleep_end" json:"sleepEnd,omitempty"`
	Hydration   string    `db:"hydration" json:"hydration,omitempty"`
	Food        string    `db:"food" json:"food,omitempty"`
	Meds        string    `db:"meds" json:"meds,omitempty"`
	Antecedent  string    `db:"antecedent" json:"antecedent,omitempty"`
	Behavior    string    `db:"behavior" json:"behavior,omitempty"`
	Consequence string    `db:"consequence" json:"consequence,omitempty"`
	Note        string    `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateCareLogParams struct {
	PatientID   string `json:"-"`
	Mood        string `json:"mood"`
	SleepStart  string `json:"sleepStart"`
	SleepEnd    string `json:"sleepEnd"`
	Hydration   string `json:"hydration"`
	Food        string `json:"food"`
	Meds        string `json:"meds"`
	Antecedent  string `json:"antecedent"`
	Behavior    string `json:"behavior"`
	Consequence string `json:"consequence"`
	Note        string `json:"note"`
}
