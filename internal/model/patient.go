package model

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Patient is an open-schema document. Canonical fields are extracted into
// columns; everything else the caller sent lives verbatim in Data and is
// flattened back into the JSON rendering.
//
// An empty or absent AssignedDoctorIDs means the patient is visible to every
// doctor. That rule predates explicit assignment and is kept permanently,
// not just for migration.
type Patient struct {
	ID                string         `db:"id"`
	AssignedDoctorID  *string        `db:"assigned_doctor_id"`
	AssignedDoctorIDs pq.StringArray `db:"assigned_doctor_ids"`
	Data              types.JSONText `db:"data"`
	CreatedAt         time.Time      `db:"created_at"`
}

func (p Patient) MarshalJSON() ([]byte, error) {
	doc := map[string]any{}
	if len(p.Data) > 0 {
		if err := json.Unmarshal(p.Data, &doc); err != nil {
			return nil, err
		}
	}
	doc["id"] = p.ID
	doc["assignedDoctorId"] = p.AssignedDoctorID
	doc["assignedDoctorIds"] = []string(p.AssignedDoctorIDs)
	doc["createdAt"] = p.CreatedAt
	return json.Marshal(doc)
}

// Diagnosis reads the free-form diagnosis field out of the open document.
func (p *Patient) Diagnosis() string {
	var doc struct {
		Diagnosis string `json:"diagnosis"`
	}
	if len(p.Data) > 0 {
		_ = json.Unmarshal(p.Data, &doc)
	}
	return doc.Diagnosis
}

// Name reads the display name out of the open document, falling back to the id.
func (p *Patient) Name() string {
	var doc struct {
		Name string `json:"name"`
	}
	if len(p.Data) > 0 {
		_ = json.Unmarshal(p.Data, &doc)
	}
	if doc.Name == "" {
		return p.ID
	}
	return doc.Name
}

type CreatePatientParams struct {
	ID                string
	AssignedDoctorID  *string
	AssignedDoctorIDs []string
	Data              types.JSONText
}
