package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carelog/carelog-server-go/internal/middleware"
	"github.com/carelog/carelog-server-go/internal/service"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// GET /api/patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	patients, err := h.patientService.List(r.Context(), *user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, patients)
}

// POST /api/patients
// The body is the patient document itself; id is the only required field.
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	patient, err := h.patientService.Create(r.Context(), *user, doc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, patient)
}

// POST /api/patients/{id}/assign
func (h *PatientHandler) Assign(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	patientID := chi.URLParam(r, "id")

	var req struct {
		DoctorEmails []string `json:"doctorEmails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	patient, err := h.patientService.Assign(r.Context(), *user, patientID, req.DoctorEmails)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, patient)
}

// GET /api/doctors
func (h *PatientHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	doctors, err := h.patientService.Doctors(r.Context(), *user)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doctors)
}

// DELETE /api/patients/{id}
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "id")

	if err := h.patientService.Delete(r.Context(), patientID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
