package model

import (
	"time"
)

// ShareLink is a time-boxed read-only pointer to a patient. At most one
// exists per patient; creating a new one supersedes the old. Codes are not
// guaranteed unique across patients.
type ShareLink struct {
	PatientID string    `json:"patientId"`
	Code      string    `json:"code"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l *ShareLink) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
