package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carelog/carelog-server-go/internal/service"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// GET /api/analysis/{patientID}
// External generation failures never surface here: the service answers with
// the heuristic summary and a degraded note instead.
func (h *AnalysisHandler) Generate(w http.ResponseWriter, r *http.Request) {
	result, err := h.analysisService.Generate(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
