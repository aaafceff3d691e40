package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carelog/carelog-server-go/internal/model"
	"github.com/carelog/carelog-server-go/internal/service"
)

type RecordHandler struct {
	recordService *service.RecordService
}

func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// POST /api/logs/{patientID}
func (h *RecordHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var params model.CreateCareLogParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	params.PatientID = chi.URLParam(r, "patientID")

	entry, err := h.recordService.CreateLog(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// GET /api/logs/{patientID}
func (h *RecordHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.recordService.ListLogs(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// POST /api/notes/{patientID}
func (h *RecordHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	note, err := h.recordService.CreateNote(r.Context(), chi.URLParam(r, "patientID"), req.Note)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// GET /api/notes/{patientID}
func (h *RecordHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.recordService.ListNotes(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}
