package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carelog/carelog-server-go/internal/service"
)

type ShareLinkHandler struct {
	shareLinkService *service.ShareLinkService
}

func NewShareLinkHandler(shareLinkService *service.ShareLinkService) *ShareLinkHandler {
	return &ShareLinkHandler{
		shareLinkService: shareLinkService,
	}
}

// POST /api/share/{patientID}
func (h *ShareLinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	link, err := h.shareLinkService.Create(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// GET /api/share/{patientID}
func (h *ShareLinkHandler) Get(w http.ResponseWriter, r *http.Request) {
	link, err := h.shareLinkService.Get(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, link)
}
