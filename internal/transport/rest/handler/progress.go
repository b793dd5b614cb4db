package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"oneclarity/internal/service"
)

// ProgressHandler handles progress and interaction history endpoints
type ProgressHandler struct {
	progressSvc *service.ProgressService
	tutorSvc    *service.TutorService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressSvc *service.ProgressService, tutorSvc *service.TutorService) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
		tutorSvc:    tutorSvc,
	}
}

// Progress handles GET /v1/progress/{studentId}
func (h *ProgressHandler) Progress(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "studentId is required")
		return
	}

	summary, err := h.progressSvc.Summarize(r.Context(), studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"studentId": studentID,
		"topics":    summary,
	})
}

// Interactions handles GET /v1/interactions/{studentId}[?topic=...]
func (h *ProgressHandler) Interactions(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]
	if studentID == "" {
		writeError(w, http.StatusBadRequest, "studentId is required")
		return
	}

	interactions, err := h.tutorSvc.Interactions(r.Context(), studentID, r.URL.Query().Get("topic"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"studentId":    studentID,
		"interactions": interactions,
	})
}
